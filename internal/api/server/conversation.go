package server

import "net/http"

func (s *Server) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.Facade.GetConversations(r.Context())
	if err != nil {
		s.serverErrorResponse(w, r, err)
		return
	}
	if err = s.writeJSON(w, envelop{"conversations": c}, http.StatusOK, nil); err != nil {
		s.serverErrorResponse(w, r, err)
	}
}
