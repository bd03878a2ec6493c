package types

import (
	"time"

	"github.com/google/uuid"
)

// Application is a candidate's application to a job. Only Status changes
// after creation.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	CandidateID uuid.UUID         `json:"candidate_id"`
	JobID       uuid.UUID         `json:"job_id"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CandidateApplication is an application as listed for its candidate.
type CandidateApplication struct {
	Application
	Job JobSummary `json:"job"`
}

// Applicant is an application as listed for the owning recruiter.
type Applicant struct {
	Application
	Candidate CandidateSummary `json:"candidate"`
}

// CandidateSummary is the projection of a candidate shown to recruiters.
type CandidateSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Skills []string  `json:"skills"`
}

// UpdateStatusRequest is the body of a status change.
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status"`
}

// Validate checks the status against the fixed set of allowed values.
func (r *UpdateStatusRequest) Validate() error {
	return ValidateStatus(r.Status)
}

// ValidateStatus returns an *ErrInvalidArgument listing the allowed values
// when s is not a recognized status.
func ValidateStatus(s ApplicationStatus) error {
	if s.Valid() {
		return nil
	}
	msg := "unrecognized value " + quote(string(s))
	if s == "" {
		msg = "is required"
	}
	return &ErrInvalidArgument{Field: "status", Message: msg, Allowed: Strings(ApplicationStatuses)}
}
