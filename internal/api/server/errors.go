package server

import (
	"log/slog"
	"net/http"
)

func (s *Server) logError(r *http.Request, err error) {
	slog.Error(err.Error(), "method", r.Method, "url", r.URL.String())
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	if err := s.writeJSON(w, envelop{"error": message}, status, nil); err != nil {
		s.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	msg := "the server encountered a problem and could not process your request"
	s.errorResponse(w, r, http.StatusInternalServerError, msg)
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	msg := "the requested resource could not be found"
	s.errorResponse(w, r, http.StatusNotFound, msg)
}

func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (s *Server) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	if err := s.writeJSON(w, envelop{"errors": errors}, http.StatusUnprocessableEntity, nil); err != nil {
		s.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	msg := "unable to update the record due to an edit conflict, please try again"
	s.errorResponse(w, r, http.StatusConflict, msg)
}

func (s *Server) invalidCredentialResponse(w http.ResponseWriter, r *http.Request) {
	msg := "invalid authentication credentials"
	s.errorResponse(w, r, http.StatusUnauthorized, msg)
}

func (s *Server) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	msg := "invalid or missing authentication token"
	s.errorResponse(w, r, http.StatusUnauthorized, msg)
}

func (s *Server) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	msg := "you must be authenticated to access this resource"
	s.errorResponse(w, r, http.StatusUnauthorized, msg)
}

func (s *Server) inactiveAccountResponse(w http.ResponseWriter, r *http.Request) {
	msg := "your user account must be activated to access this resource"
	s.errorResponse(w, r, http.StatusForbidden, msg)
}

func (s *Server) alreadyActivatedResponse(w http.ResponseWriter, r *http.Request) {
	msg := "user account is already activated"
	s.errorResponse(w, r, http.StatusConflict, msg)
}

func (s *Server) redundantSubscription(w http.ResponseWriter, r *http.Request) {
	msg := "an active subscription already exists for this account"
	s.errorResponse(w, r, http.StatusConflict, msg)
}
