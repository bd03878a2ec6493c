// Package catalog owns job postings and their keyword sets. It runs keyword
// extraction when a posting is created and whenever its description changes.
package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/authz"
	"github.com/jonathan/job-portal/internal/keywords"
	"github.com/jonathan/job-portal/internal/types"
)

// Store is the persistence the catalog needs. GetJob returns (nil, nil)
// when the job does not exist.
//
// UpdateJob loads the job, passes it to mutate and writes the editable
// fields back, all while holding the row. An error from mutate aborts the
// write and is returned unchanged. SetJobKeywords writes only while the
// job's description still equals description and reports whether it did.
type Store interface {
	CreateJob(ctx context.Context, job *types.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, mutate func(*types.Job) error) (*types.Job, error)
	SetJobKeywords(ctx context.Context, id uuid.UUID, description string, keywords []string) (bool, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	SearchJobs(ctx context.Context, terms []string) ([]types.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]types.Job, error)
	CountApplicationsForJob(ctx context.Context, jobID uuid.UUID) (int, error)
}

// Service implements the job catalog operations.
type Service struct {
	store     Store
	extractor keywords.Extractor
}

// NewService creates a catalog backed by store. A nil extractor disables
// keyword extraction.
func NewService(store Store, extractor keywords.Extractor) *Service {
	if extractor == nil {
		extractor = keywords.NopExtractor{}
	}
	return &Service{store: store, extractor: extractor}
}

// Create persists a new posting owned by the caller, then attaches the
// keywords extracted from its description. A degraded extraction leaves the
// keyword set empty and does not fail the call.
func (s *Service) Create(ctx context.Context, p types.Principal, req *types.CreateJobRequest) (*types.Job, error) {
	if !authz.HasRole(p, types.RoleRecruiter) {
		return nil, &types.ErrForbidden{Action: "post jobs"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job := req.NewJob(p.ID)
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.attachKeywords(ctx, job)
	return job, nil
}

// Update applies the supplied fields to a posting owned by the caller.
// Keywords are re-extracted only when the description changed.
func (s *Service) Update(ctx context.Context, p types.Principal, jobID uuid.UUID, req *types.UpdateJobRequest) (*types.Job, error) {
	if _, err := s.ownedJob(ctx, p, jobID, "update this job"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var descriptionChanged bool
	var rangeErr error
	job, err := s.store.UpdateJob(ctx, jobID, func(job *types.Job) error {
		descriptionChanged = req.Apply(job)
		rangeErr = types.ValidateSalaryRange(job.SalaryMin, job.SalaryMax)
		return rangeErr
	})
	if rangeErr != nil {
		return nil, rangeErr
	}
	if err != nil {
		if types.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if descriptionChanged {
		s.attachKeywords(ctx, job)
	}
	return job, nil
}

// Delete removes a posting owned by the caller. A posting that candidates
// have applied to cannot be deleted.
func (s *Service) Delete(ctx context.Context, p types.Principal, jobID uuid.UUID) error {
	if _, err := s.ownedJob(ctx, p, jobID, "delete this job"); err != nil {
		return err
	}

	n, err := s.store.CountApplicationsForJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to count applications: %w", err)
	}
	if n > 0 {
		return &types.ErrConflict{Message: fmt.Sprintf("job has %d application(s) and cannot be deleted", n)}
	}

	if err := s.store.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// Get returns the full posting.
func (s *Service) Get(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, &types.ErrNotFound{Resource: "job", ID: jobID}
	}
	return job, nil
}

// Search returns postings matching any comma-separated term in raw, newest
// first. A term matches when it is one of the posting's keywords or occurs
// in its title ignoring case. No terms returns every posting.
func (s *Service) Search(ctx context.Context, raw string) ([]types.Job, error) {
	jobs, err := s.store.SearchJobs(ctx, ParseTerms(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	return jobs, nil
}

// ListByOwner returns the caller's own postings, newest first.
func (s *Service) ListByOwner(ctx context.Context, p types.Principal) ([]types.Job, error) {
	if !authz.HasRole(p, types.RoleRecruiter) {
		return nil, &types.ErrForbidden{Action: "list posted jobs"}
	}
	jobs, err := s.store.ListJobsByOwner(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	return jobs, nil
}

// ParseTerms splits a comma-separated query into lowercase terms, dropping
// blanks.
func ParseTerms(raw string) []string {
	var terms []string
	for _, part := range strings.Split(raw, ",") {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func (s *Service) ownedJob(ctx context.Context, p types.Principal, jobID uuid.UUID, action string) (*types.Job, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(p, job.OwnerID) {
		return nil, &types.ErrForbidden{Action: action}
	}
	return job, nil
}

// attachKeywords extracts keywords from the job description and stores
// them. Failures are logged and leave job.Keywords as it was. Keywords are
// dropped when the description was replaced while extraction ran.
func (s *Service) attachKeywords(ctx context.Context, job *types.Job) {
	// The posting is already written; finish the keyword write even if the
	// client goes away.
	ctx = context.WithoutCancel(ctx)

	res := s.extractor.Extract(ctx, job.Description)
	if !res.OK() {
		log.Printf("[catalog] keyword extraction skipped for job %s: %v", job.ID, res.Err)
		return
	}
	applied, err := s.store.SetJobKeywords(ctx, job.ID, job.Description, res.Keywords)
	if err != nil {
		log.Printf("[catalog] failed to store keywords for job %s: %v", job.ID, err)
		return
	}
	if !applied {
		log.Printf("[catalog] discarded keywords for job %s: description changed during extraction", job.ID)
		return
	}
	job.Keywords = res.Keywords
}
