package server

import (
	"errors"
	"net/http"

	"github.com/minglehq/mingle/internal/api/utility"
	"github.com/minglehq/mingle/internal/domain"
)

func (s *Server) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var userRegister domain.UserRegister
	if err := s.readJSON(w, r, &userRegister); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}

	if err := s.Facade.RegisterUser(r.Context(), &userRegister); err != nil {
		var ev *domain.ErrValidation
		switch {
		case errors.As(err, &ev):
			s.failedValidationResponse(w, r, ev.Errors)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user, err := s.Facade.GetUserByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			s.notFoundResponse(w, r)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}
	if err = s.writeJSON(w, envelop{"user": user}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) ActivateUserHandler(w http.ResponseWriter, r *http.Request) {
	var token struct {
		OTP string `json:"otp"`
	}
	if err := s.readJSON(w, r, &token); err != nil {
		s.badRequestResponse(w, r, err)
		return
	}
	if err := s.Facade.ActivateUser(r.Context(), token.OTP); err != nil {
		var ev *domain.ErrValidation
		switch {
		case errors.As(err, &ev):
			s.failedValidationResponse(w, r, ev.Errors)
		case errors.Is(err, domain.ErrAlreadyActive):
			s.alreadyActivatedResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			s.editConflictResponse(w, r)
		default:
			s.serverErrorResponse(w, r, err)
		}
		return
	}
}

func (s *Server) SearchUserHandler(w http.ResponseWriter, r *http.Request) {
	queryParam := s.readString(r.URL.Query(), "param", "")
	users, err := s.Facade.SearchUser(r.Context(), queryParam)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			s.notFoundResponse(w, r)
			return
		}
		s.serverErrorResponse(w, r, err)
		return
	}
	if err = s.writeJSON(w, envelop{"users": users}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}

func (s *Server) GetCurrentActiveUserHandler(w http.ResponseWriter, r *http.Request) {
	u := utility.ContextGetUser(r.Context())
	if err := s.writeJSON(w, envelop{"user": u}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}
