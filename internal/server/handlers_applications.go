package server

import (
	"net/http"

	"github.com/jonathan/job-portal/internal/types"
)

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id", "job")
	if !ok {
		return
	}

	app, err := s.apps.Apply(r.Context(), p, jobID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id", "job")
	if !ok {
		return
	}

	applicants, err := s.apps.ListForJob(r.Context(), p, jobID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"applications": applicants,
		"count":        len(applicants),
	})
}

func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	apps, err := s.apps.ListForCandidate(r.Context(), p)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r, "id", "application")
	if !ok {
		return
	}

	var req types.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	applicant, err := s.apps.SetStatus(r.Context(), p, appID, req.Status)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, applicant)
}
