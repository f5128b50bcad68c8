package server

import (
	"errors"
	"net/http"

	"github.com/minglehq/mingle/internal/api/utility"
	"github.com/minglehq/mingle/internal/domain"
)

func (s *Server) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("id")
	u := utility.ContextGetUser(r.Context())
	// a user only reads threads they are part of
	if _, err := s.Facade.GetConversationPeer(r.Context(), conversationID, u.ID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			s.notFoundResponse(w, r)
			return
		}
		s.serverErrorResponse(w, r, err)
		return
	}
	msgs, err := s.Facade.GetMessages(r.Context(), conversationID)
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	if err = s.writeJSON(w, envelop{"messages": msgs}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}
