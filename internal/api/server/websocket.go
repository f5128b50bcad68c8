package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/minglehq/mingle/internal/api/utility"
	"github.com/minglehq/mingle/internal/domain"
)

var ErrAlreadySubscribed = errors.New("already subscribed")

func (s *Server) WebsocketSubscribeHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.subscribe(w, r)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadySubscribed):
			s.redundantSubscription(w, r)
		default:
			slog.Error(err.Error())
		}
		return
	}
	u := utility.ContextGetUser(r.Context())
	s.addSubscriber(u)
	defer s.unsubscribe(u, conn)

	// buffered because if there is any error we'll return so we don't want the other writes to block
	errChan := make(chan error, 1)
	reqCtx, cancel := context.WithCancel(r.Context())
	defer cancel()
	s.BackgroundTask.Run(func(shtdwnCtx context.Context) {
		errChan <- s.handleClientEvents(shtdwnCtx, reqCtx, conn)
	})
	s.BackgroundTask.Run(func(shtdwnCtx context.Context) {
		errChan <- s.handleServerEvents(shtdwnCtx, reqCtx, conn)
	})

	if err = <-errChan; err != nil {
		// Once there is an error from one of the background tasks,
		// means the Ws connection is closed so we cancel the reqCtx
		// so the other background task can exit listening on it
		cancel()
		if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
			websocket.CloseStatus(err) == websocket.StatusAbnormalClosure ||
			websocket.CloseStatus(err) == websocket.StatusGoingAway ||
			errors.Is(err, io.EOF) ||
			errors.Is(err, context.Canceled) {
			return
		}
		slog.Error(err.Error())
	}
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	var mu sync.Mutex
	var conn *websocket.Conn

	u := utility.ContextGetUser(r.Context()) // User will be authenticated and setup in the context using middleware
	if s.subscriberExists(u.ID) {            // multiple online instances of the account are not allowed by design
		return nil, ErrAlreadySubscribed
	}
	u.Events = make(domain.EventChan, s.subscriberEventBuffer)
	u.CloseSlow = func() {
		mu.Lock()
		defer mu.Unlock()
		if conn != nil {
			conn.Close(websocket.StatusPolicyViolation, "connection too slow to keep up with events")
		}
	}
	r = utility.ContextSetUser(r, u) // setting back updated user in context
	c, err := websocket.Accept(w, r, s.wsAcceptOpts)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	conn = c
	mu.Unlock()
	return conn, nil
}

func (s *Server) unsubscribe(u *domain.User, conn *websocket.Conn) {
	s.removeSubscriber(u)
	conn.CloseNow()
}

// handleClientEvents is the hub's inbound side: every event the subscriber's
// client sends lands here, gets persisted where it must be, and is relayed to
// the other participant's event channel when they are online.
func (s *Server) handleClientEvents(shutdownCtx, reqCtx context.Context, conn *websocket.Conn) error {
	u := utility.ContextGetUser(reqCtx)
	for {
		var ev domain.Event
		// read will immediately error out once the client shuts the Ws connection
		if err := wsjson.Read(shutdownCtx, conn, &ev); err != nil {
			return err
		}
		switch ev.Op {

		case domain.AddUserEvent:
			// identity comes from the auth token, nothing to do

		case domain.SendMessageEvent:
			msg, receiverID, err := s.Facade.ProcessSentMessage(reqCtx, &ev, u)
			if err != nil {
				var ve *domain.ErrValidation
				if errors.As(err, &ve) {
					writeValidationError(conn, ve)
					continue
				}
				return err
			}
			s.relay(shutdownCtx, reqCtx, receiverID, &domain.Event{
				Op:      domain.AddMessageEvent,
				Message: msg,
				IsNew:   ev.IsNew,
			})

		case domain.UnreadStatusEvent:
			if ev.Message == nil {
				continue
			}
			convoID := ev.Message.ConversationID
			// record the sender's run either way so consecutive-run accounting
			// survives a restart, then zero the viewer's side if they saw it
			if err := s.Facade.SetConversationUnread(reqCtx, convoID, ev.Message.SenderID); err != nil {
				slog.Error(err.Error())
			}
			if !ev.IsUnread {
				if err := s.Facade.MarkConversationRead(reqCtx, convoID, u.ID); err != nil {
					slog.Error(err.Error())
				}
			}

		case domain.MessageReadEvent:
			if err := s.Facade.MarkConversationRead(reqCtx, ev.ConversationID, u.ID); err != nil {
				slog.Error(err.Error())
			}
			receiverID := ev.UserID
			if receiverID == "" {
				var err error
				if receiverID, err = s.Facade.GetConversationPeer(reqCtx, ev.ConversationID, u.ID); err != nil {
					slog.Error(err.Error())
					continue
				}
			}
			s.relay(shutdownCtx, reqCtx, receiverID, &domain.Event{
				Op:             domain.MessageReadEvent,
				ConversationID: ev.ConversationID,
			})

		case domain.IsTypingEvent:
			// ephemeral, never persisted
			s.relay(shutdownCtx, reqCtx, ev.UserID, &domain.Event{
				Op:       domain.IsTypingEvent,
				UserID:   u.ID,
				IsTyping: ev.IsTyping,
			})

		default:
			slog.Warn("unexpected event from subscriber", "op", ev.Op, "user", u.ID)
		}
	}
}

func (s *Server) handleServerEvents(shutdownCtx, reqCtx context.Context, conn *websocket.Conn) error {
	u := utility.ContextGetUser(reqCtx)
	for {
		select {
		case ev := <-u.Events:
			if s.publishLimiter.Allow() {
				if err := writeWithTimeout(conn, 2*time.Second, ev); err != nil {
					slog.Error(err.Error())
					return err
				}
			}
		case <-reqCtx.Done():
			return nil
		case <-shutdownCtx.Done():
			return nil
		}
	}
}

func (s *Server) relay(shutdownCtx, reqCtx context.Context, receiverID string, ev *domain.Event) {
	s.SubsMu.Lock()
	relayTo, ok := s.Subscribers[receiverID]
	s.SubsMu.Unlock()
	if !ok {
		return
	}
	select {
	case relayTo.Events <- ev:
	case <-shutdownCtx.Done():
	case <-reqCtx.Done():
	default:
		relayTo.CloseSlow()
	}
}

func (s *Server) subscriberExists(id string) bool {
	s.SubsMu.Lock()
	defer s.SubsMu.Unlock()
	_, ok := s.Subscribers[id]
	return ok
}

func (s *Server) addSubscriber(u *domain.User) {
	s.SubsMu.Lock()
	s.Subscribers[u.ID] = u
	s.SubsMu.Unlock()
}

func (s *Server) removeSubscriber(u *domain.User) {
	s.SubsMu.Lock()
	delete(s.Subscribers, u.ID)
	s.SubsMu.Unlock()
}

func writeWithTimeout(conn *websocket.Conn, t time.Duration, ev any) error {
	ctx, cancel := context.WithTimeout(context.Background(), t)
	defer cancel()
	return wsjson.Write(ctx, conn, ev)
}

func writeValidationError(conn *websocket.Conn, ev *domain.ErrValidation) {
	if err := writeWithTimeout(conn, 5*time.Second, ev.Errors); err != nil {
		slog.Error(err.Error())
	}
}
