package server

import (
	"net/http"

	"github.com/jonathan/job-portal/internal/recommend"
	"github.com/jonathan/job-portal/internal/types"
)

const maxRecommendations = 50

// handleSearchJobs lists jobs matching ?keywords=a,b, or every job when the
// parameter is empty.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.catalog.Search(r.Context(), r.URL.Query().Get("keywords"))
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleListMyJobs(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	jobs, err := s.catalog.ListByOwner(r.Context(), p)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "id", "job")
	if !ok {
		return
	}

	job, err := s.catalog.Get(r.Context(), jobID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "id", "job")
	if !ok {
		return
	}
	limit := parseQueryInt(r, "limit", recommend.DefaultLimit, maxRecommendations)

	jobs, err := s.recommender.Recommend(r.Context(), jobID, limit)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req types.CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := s.catalog.Create(r.Context(), p, &req)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id", "job")
	if !ok {
		return
	}

	var req types.UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := s.catalog.Update(r.Context(), p, jobID, &req)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id", "job")
	if !ok {
		return
	}

	if err := s.catalog.Delete(r.Context(), p, jobID); err != nil {
		serviceError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
