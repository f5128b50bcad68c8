package server

import (
	"net/http"

	"github.com/justinas/alice"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	// Middlewares
	base := alice.New(s.recoverPanic, s.authenticate)
	authenticated := alice.New(s.requireAuthenticatedUser)
	activated := authenticated.Append(s.requireActivatedUser)
	// User Routes
	mux.HandleFunc("POST /v1/users", s.RegisterUserHandler)
	mux.Handle("GET /v1/users/current", activated.ThenFunc(s.GetCurrentActiveUserHandler))
	mux.Handle("GET /v1/users/{id}", authenticated.ThenFunc(s.GetUserByIDHandler))
	mux.Handle("GET /v1/users", authenticated.ThenFunc(s.SearchUserHandler))
	mux.HandleFunc("POST /v1/users/activate", s.ActivateUserHandler)
	// Token Routes
	mux.HandleFunc("POST /v1/tokens/otp", s.GenerateOTPHandler)
	mux.HandleFunc("POST /v1/tokens/auth", s.GenerateAuthTokenHandler)
	// Conversation Routes
	mux.Handle("GET /v1/conversations", activated.ThenFunc(s.GetConversationsHandler))
	mux.Handle("GET /v1/conversations/{id}/messages", activated.ThenFunc(s.GetMessagesHandler))
	// Websocket Routes
	mux.Handle("/sub", activated.ThenFunc(s.WebsocketSubscribeHandler))

	return base.Then(mux)
}
