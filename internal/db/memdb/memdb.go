// Package memdb is an in-process implementation of the job portal store. It
// mirrors the Postgres store's semantics, including the uniqueness of an
// application per (candidate, job) pair and the restriction on deleting a job
// that has applications. It backs `serve --memory` and the package tests.
package memdb

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/keywords"
	"github.com/jonathan/job-portal/internal/types"
)

type pairKey struct {
	candidateID uuid.UUID
	jobID       uuid.UUID
}

// Store holds every record in maps guarded by a single lock.
type Store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]types.User
	jobs  map[uuid.UUID]types.Job
	apps  map[uuid.UUID]types.Application
	pairs map[pairKey]uuid.UUID
	last  time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users: make(map[uuid.UUID]types.User),
		jobs:  make(map[uuid.UUID]types.Job),
		apps:  make(map[uuid.UUID]types.Application),
		pairs: make(map[pairKey]uuid.UUID),
	}
}

// Close is a no-op kept for parity with the Postgres store.
func (s *Store) Close() {}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// now returns a timestamp strictly after the previous one so creation order
// is total. Callers must hold the write lock.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// -----------------------------------------------------------------------------
// Users
// -----------------------------------------------------------------------------

// CheckEmailExists reports whether a user with email is registered.
func (s *Store) CheckEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserByEmail(email) != nil, nil
}

// CreateUser stores u, assigning its id and timestamps.
func (s *Store) CreateUser(_ context.Context, u *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByEmail(u.Email) != nil {
		return &types.ErrConflict{Message: "email already registered: " + u.Email}
	}
	u.ID = uuid.New()
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	if u.Skills == nil {
		u.Skills = []string{}
	}
	s.users[u.ID] = copyUser(*u)
	return nil
}

// GetUser returns the user or nil if absent.
func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := copyUser(u)
	return &out, nil
}

// GetUserByEmail returns the user or nil if absent.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.findUserByEmail(email)
	if u == nil {
		return nil, nil
	}
	out := copyUser(*u)
	return &out, nil
}

// UpdateUserSkills replaces the user's skills.
func (s *Store) UpdateUserSkills(_ context.Context, id uuid.UUID, skills []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return &types.ErrNotFound{Resource: "user", ID: id}
	}
	u.Skills = append([]string{}, skills...)
	u.UpdatedAt = s.now()
	s.users[id] = u
	return nil
}

func (s *Store) findUserByEmail(email string) *types.User {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Jobs
// -----------------------------------------------------------------------------

// CreateJob stores job, assigning its id and timestamps.
func (s *Store) CreateJob(_ context.Context, job *types.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job.ID = uuid.New()
	job.CreatedAt = s.now()
	job.UpdatedAt = job.CreatedAt
	if job.Keywords == nil {
		job.Keywords = []string{}
	}
	s.jobs[job.ID] = copyJob(*job)
	return nil
}

// GetJob returns the job or nil if absent.
func (s *Store) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	out := copyJob(j)
	return &out, nil
}

// UpdateJob applies mutate to the stored job under the write lock. Keywords,
// owner and creation time are kept regardless of what mutate does.
func (s *Store) UpdateJob(_ context.Context, id uuid.UUID, mutate func(*types.Job) error) (*types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jobs[id]
	if !ok {
		return nil, &types.ErrNotFound{Resource: "job", ID: id}
	}
	updated := copyJob(existing)
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	updated.Keywords = existing.Keywords
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	s.jobs[id] = updated

	out := copyJob(updated)
	return &out, nil
}

// SetJobKeywords replaces the job's keyword set if its description is still
// description. It reports false when the job is gone or was edited.
func (s *Store) SetJobKeywords(_ context.Context, id uuid.UUID, description string, kws []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok || j.Description != description {
		return false, nil
	}
	j.Keywords = append([]string{}, kws...)
	j.UpdatedAt = s.now()
	s.jobs[id] = j
	return true, nil
}

// DeleteJob removes the job. A job with applications cannot be deleted.
func (s *Store) DeleteJob(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return &types.ErrNotFound{Resource: "job", ID: id}
	}
	for _, a := range s.apps {
		if a.JobID == id {
			return &types.ErrConflict{Message: "job has applications and cannot be deleted"}
		}
	}
	delete(s.jobs, id)
	return nil
}

// SearchJobs returns jobs whose keywords contain any term or whose title
// contains any term case-insensitively, newest first. No terms returns all.
func (s *Store) SearchJobs(_ context.Context, terms []string) ([]types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Job
	for _, j := range s.jobs {
		if len(terms) == 0 || keywords.Overlap(j.Keywords, terms) || titleContainsAny(j.Title, terms) {
			out = append(out, copyJob(j))
		}
	}
	sortJobsNewestFirst(out)
	return out, nil
}

// ListJobsByOwner returns the owner's jobs, newest first.
func (s *Store) ListJobsByOwner(_ context.Context, ownerID uuid.UUID) ([]types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Job
	for _, j := range s.jobs {
		if j.OwnerID == ownerID {
			out = append(out, copyJob(j))
		}
	}
	sortJobsNewestFirst(out)
	return out, nil
}

// ListJobsSharingKeywords returns up to limit jobs other than excludeID
// sharing a keyword with kws, newest first.
func (s *Store) ListJobsSharingKeywords(_ context.Context, kws []string, excludeID uuid.UUID, limit int) ([]types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Job
	for _, j := range s.jobs {
		if j.ID != excludeID && keywords.Overlap(j.Keywords, kws) {
			out = append(out, copyJob(j))
		}
	}
	sortJobsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountApplicationsForJob returns how many applications reference the job.
func (s *Store) CountApplicationsForJob(_ context.Context, jobID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

// -----------------------------------------------------------------------------
// Applications
// -----------------------------------------------------------------------------

// FindApplication returns the application for the pair or nil.
func (s *Store) FindApplication(_ context.Context, candidateID, jobID uuid.UUID) (*types.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.pairs[pairKey{candidateID, jobID}]
	if !ok {
		return nil, nil
	}
	a := s.apps[id]
	return &a, nil
}

// CreateApplication stores app with status applied. The pair check and the
// insert happen under one lock, so a racing duplicate gets a conflict.
func (s *Store) CreateApplication(_ context.Context, app *types.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[app.JobID]; !ok {
		return &types.ErrNotFound{Resource: "job", ID: app.JobID}
	}
	if _, ok := s.users[app.CandidateID]; !ok {
		return &types.ErrNotFound{Resource: "user", ID: app.CandidateID}
	}
	key := pairKey{app.CandidateID, app.JobID}
	if _, exists := s.pairs[key]; exists {
		return &types.ErrConflict{Message: "already applied to this job"}
	}

	app.ID = uuid.New()
	app.Status = types.StatusApplied
	app.CreatedAt = s.now()
	app.UpdatedAt = app.CreatedAt
	s.apps[app.ID] = *app
	s.pairs[key] = app.ID
	return nil
}

// GetApplication returns the application or nil.
func (s *Store) GetApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.apps[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// UpdateApplicationStatus overwrites the application's status.
func (s *Store) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status types.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.apps[id]
	if !ok {
		return &types.ErrNotFound{Resource: "application", ID: id}
	}
	a.Status = status
	a.UpdatedAt = s.now()
	s.apps[id] = a
	return nil
}

// ListApplicationsByCandidate returns the candidate's applications with a
// job projection, newest first.
func (s *Store) ListApplicationsByCandidate(_ context.Context, candidateID uuid.UUID) ([]types.CandidateApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.CandidateApplication
	for _, a := range s.apps {
		if a.CandidateID != candidateID {
			continue
		}
		summary := types.JobSummary{ID: a.JobID}
		if j, ok := s.jobs[a.JobID]; ok {
			summary = j.Summary()
		}
		out = append(out, types.CandidateApplication{Application: a, Job: summary})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

// ListApplicantsByJob returns the job's applications with a candidate
// projection, oldest first.
func (s *Store) ListApplicantsByJob(_ context.Context, jobID uuid.UUID) ([]types.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Applicant
	for _, a := range s.apps {
		if a.JobID == jobID {
			out = append(out, s.applicant(a))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}

// GetApplicant returns one application with its candidate projection, or nil.
func (s *Store) GetApplicant(_ context.Context, applicationID uuid.UUID) (*types.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.apps[applicationID]
	if !ok {
		return nil, nil
	}
	out := s.applicant(a)
	return &out, nil
}

func (s *Store) applicant(a types.Application) types.Applicant {
	candidate := types.CandidateSummary{ID: a.CandidateID, Skills: []string{}}
	if u, ok := s.users[a.CandidateID]; ok {
		u = copyUser(u)
		candidate = u.CandidateSummary()
	}
	return types.Applicant{Application: a, Candidate: candidate}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func titleContainsAny(title string, terms []string) bool {
	lower := strings.ToLower(title)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func sortJobsNewestFirst(jobs []types.Job) {
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].CreatedAt.After(jobs[k].CreatedAt) })
}

func copyJob(j types.Job) types.Job {
	j.Keywords = append([]string{}, j.Keywords...)
	if j.SalaryMin != nil {
		v := *j.SalaryMin
		j.SalaryMin = &v
	}
	if j.SalaryMax != nil {
		v := *j.SalaryMax
		j.SalaryMax = &v
	}
	return j
}

func copyUser(u types.User) types.User {
	u.Skills = append([]string{}, u.Skills...)
	return u
}
