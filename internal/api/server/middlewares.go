package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/minglehq/mingle/internal/api/utility"
	"github.com/minglehq/mingle/internal/domain"
)

// authenticate resolves the bearer token to a user and stashes it in the
// request context, absent a header the anonymous user goes in instead.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Authorization")
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, utility.ContextSetUser(r, domain.AnonymousUser))
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" {
			s.invalidCredentialResponse(w, r)
			return
		}
		usr, err := s.Facade.VerifyAuthToken(r.Context(), token)
		if err != nil {
			s.invalidAuthenticationTokenResponse(w, r)
			return
		}
		next.ServeHTTP(w, utility.ContextSetUser(r, usr))
	})
}

func (s *Server) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utility.ContextGetUser(r.Context()).IsAnonymousUser() {
			s.authenticationRequiredResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireActivatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utility.ContextGetUser(r.Context()).Activated {
			s.inactiveAccountResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				s.serverErrorResponse(w, r, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
