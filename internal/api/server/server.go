package server

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/minglehq/mingle/internal/api/facade"
	"github.com/minglehq/mingle/internal/common"
	"github.com/minglehq/mingle/internal/domain"
	"golang.org/x/time/rate"
)

type Server struct {
	Config                *common.Config
	BackgroundTask        *common.BackgroundTask
	Facade                *facade.Facade
	wsAcceptOpts          *websocket.AcceptOptions
	subscriberEventBuffer int
	publishLimiter        *rate.Limiter

	SubsMu      sync.Mutex
	Subscribers map[string]*domain.User
}

func NewServer(cfg *common.Config, bt *common.BackgroundTask, facade *facade.Facade) *Server {
	return &Server{
		Config:         cfg,
		BackgroundTask: bt,
		Facade:         facade,
		wsAcceptOpts: &websocket.AcceptOptions{
			CompressionMode:    websocket.CompressionContextTakeover,
			InsecureSkipVerify: true,
		},
		subscriberEventBuffer: 16,
		publishLimiter:        rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
		Subscribers:           make(map[string]*domain.User), // keys are userID
	}
}

func (s *Server) Serve() {
	srv := &http.Server{
		Addr:         fmt.Sprint(":", s.Config.Port),
		Handler:      s.routes(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 6 * time.Second,
		IdleTimeout:  time.Minute,
	}
	slog.Info("starting server", "addr", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}
