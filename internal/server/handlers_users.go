package server

import (
	"net/http"

	"github.com/jonathan/job-portal/internal/types"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	user, err := s.userService.GetProfile(r.Context(), p.ID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req types.UpdateSkillsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.userService.UpdateSkills(r.Context(), p.ID, &req)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, user)
}
