// Package applications manages candidate applications to job postings and
// the status a recruiter assigns to them.
package applications

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/authz"
	"github.com/jonathan/job-portal/internal/types"
)

// Store is the persistence the lifecycle needs. Single-record getters return
// (nil, nil) when the record does not exist. CreateApplication must return
// an *types.ErrConflict when an application for the same candidate and job
// already exists, including when another insert wins a race.
type Store interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	FindApplication(ctx context.Context, candidateID, jobID uuid.UUID) (*types.Application, error)
	CreateApplication(ctx context.Context, app *types.Application) error
	GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.ApplicationStatus) error
	ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]types.CandidateApplication, error)
	ListApplicantsByJob(ctx context.Context, jobID uuid.UUID) ([]types.Applicant, error)
	GetApplicant(ctx context.Context, applicationID uuid.UUID) (*types.Applicant, error)
}

// Service implements the application lifecycle.
type Service struct {
	store Store
}

// NewService creates a lifecycle service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Apply records the caller's application to a job with status applied.
func (s *Service) Apply(ctx context.Context, p types.Principal, jobID uuid.UUID) (*types.Application, error) {
	if !authz.HasRole(p, types.RoleCandidate) {
		return nil, &types.ErrForbidden{Action: "apply to jobs"}
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, &types.ErrNotFound{Resource: "job", ID: jobID}
	}

	existing, err := s.store.FindApplication(ctx, p.ID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing != nil {
		return nil, alreadyApplied()
	}

	app := &types.Application{CandidateID: p.ID, JobID: jobID}
	if err := s.store.CreateApplication(ctx, app); err != nil {
		if types.IsConflict(err) {
			log.Printf("[applications] duplicate apply for job %s by %s resolved by store", jobID, p.ID)
			return nil, alreadyApplied()
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// ListForCandidate returns the caller's applications, newest first.
func (s *Service) ListForCandidate(ctx context.Context, p types.Principal) ([]types.CandidateApplication, error) {
	if !authz.HasRole(p, types.RoleCandidate) {
		return nil, &types.ErrForbidden{Action: "list applications"}
	}
	apps, err := s.store.ListApplicationsByCandidate(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if apps == nil {
		apps = []types.CandidateApplication{}
	}
	return apps, nil
}

// ListForJob returns the applicants to a job the caller owns, oldest first.
func (s *Service) ListForJob(ctx context.Context, p types.Principal, jobID uuid.UUID) ([]types.Applicant, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, &types.ErrNotFound{Resource: "job", ID: jobID}
	}
	if !authz.IsOwner(p, job.OwnerID) {
		return nil, &types.ErrForbidden{Action: "view applicants for this job"}
	}

	applicants, err := s.store.ListApplicantsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	if applicants == nil {
		applicants = []types.Applicant{}
	}
	return applicants, nil
}

// SetStatus overwrites the status of an application to a job the caller
// owns. Any recognized status may follow any other.
func (s *Service) SetStatus(ctx context.Context, p types.Principal, applicationID uuid.UUID, status types.ApplicationStatus) (*types.Applicant, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, &types.ErrNotFound{Resource: "application", ID: applicationID}
	}

	job, err := s.store.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || !authz.IsOwner(p, job.OwnerID) {
		return nil, &types.ErrForbidden{Action: "update this application"}
	}

	if err := types.ValidateStatus(status); err != nil {
		return nil, err
	}

	if err := s.store.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	applicant, err := s.store.GetApplicant(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if applicant == nil {
		return nil, &types.ErrNotFound{Resource: "application", ID: applicationID}
	}
	return applicant, nil
}

func alreadyApplied() error {
	return &types.ErrConflict{Message: "already applied to this job"}
}
