package server

import (
	"errors"
	"net/http"

	"github.com/minglehq/mingle/internal/domain"
)

func (s *Server) GenerateOTPHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := s.readJSON(w, r, &in); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	err := s.Facade.GenerateOTP(r.Context(), in.Email)
	var ev *domain.ErrValidation
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.As(err, &ev):
		s.failedValidationResponse(w, r, ev.Errors)
	case errors.Is(err, domain.ErrAlreadyActive):
		s.alreadyActivatedResponse(w, r)
	default:
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) GenerateAuthTokenHandler(w http.ResponseWriter, r *http.Request) {
	var creds domain.UserAuth
	if err := s.readJSON(w, r, &creds); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	token, err := s.Facade.GenerateAuthToken(r.Context(), &creds)
	if err != nil {
		var ev *domain.ErrValidation
		if errors.As(err, &ev) {
			s.failedValidationResponse(w, r, ev.Errors)
		} else {
			s.serverErrorResponse(w, r, err)
		}
		return
	}
	if err = s.writeJSON(w, envelop{"token": token}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}
