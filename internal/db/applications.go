package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/job-portal/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

const applicationColumns = `a.id, a.candidate_id, a.job_id, a.status, a.created_at, a.updated_at`

// FindApplication returns the application for a candidate and job, or nil
func (db *DB) FindApplication(ctx context.Context, candidateID, jobID uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a
		 WHERE a.candidate_id = $1 AND a.job_id = $2`,
		candidateID, jobID,
	)
	return scanApplication(row)
}

// CreateApplication inserts app with status applied. The insert is guarded by
// the (candidate_id, job_id) unique constraint; when a row already exists
// nothing is written and an *types.ErrConflict is returned.
func (db *DB) CreateApplication(ctx context.Context, app *types.Application) error {
	var status string
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (candidate_id, job_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (candidate_id, job_id) DO NOTHING
		 RETURNING id, status, created_at, updated_at`,
		app.CandidateID, app.JobID, string(types.StatusApplied),
	).Scan(&app.ID, &status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &types.ErrConflict{Message: "already applied to this job"}
		}
		if pgErrorCode(err) == codeForeignKeyViolation {
			switch pgConstraint(err) {
			case constraintApplicationCandidate:
				return &types.ErrNotFound{Resource: "user", ID: app.CandidateID}
			case constraintApplicationJob:
				return &types.ErrNotFound{Resource: "job", ID: app.JobID}
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	app.Status = types.ApplicationStatus(status)
	return nil
}

// GetApplication retrieves an application by ID, or nil if none exists
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`,
		id,
	)
	return scanApplication(row)
}

// UpdateApplicationStatus overwrites an application's status
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.ApplicationStatus) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = clock_timestamp() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &types.ErrNotFound{Resource: "application", ID: id}
	}
	return nil
}

// ListApplicationsByCandidate returns a candidate's applications joined with
// the job summary, newest first
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]types.CandidateApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`,
		        j.id, j.title, COALESCE(j.company_name, ''), COALESCE(j.location, ''), COALESCE(j.job_type, '')
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	out := []types.CandidateApplication{}
	for rows.Next() {
		var ca types.CandidateApplication
		var status, jobType string
		if err := rows.Scan(&ca.ID, &ca.CandidateID, &ca.JobID, &status, &ca.CreatedAt, &ca.UpdatedAt,
			&ca.Job.ID, &ca.Job.Title, &ca.Job.CompanyName, &ca.Job.Location, &jobType); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		ca.Status = types.ApplicationStatus(status)
		ca.Job.JobType = types.JobType(jobType)
		out = append(out, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return out, nil
}

const applicantQuery = `SELECT ` + applicationColumns + `,
	u.id, u.first_name, u.last_name, u.email, u.skills
	FROM applications a
	JOIN users u ON u.id = a.candidate_id`

// ListApplicantsByJob returns a job's applications joined with the candidate
// summary, oldest first
func (db *DB) ListApplicantsByJob(ctx context.Context, jobID uuid.UUID) ([]types.Applicant, error) {
	rows, err := db.pool.Query(ctx,
		applicantQuery+` WHERE a.job_id = $1 ORDER BY a.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	out := []types.Applicant{}
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		out = append(out, *applicant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applicants: %w", err)
	}
	return out, nil
}

// GetApplicant returns one application joined with its candidate summary,
// or nil if none exists
func (db *DB) GetApplicant(ctx context.Context, applicationID uuid.UUID) (*types.Applicant, error) {
	row := db.pool.QueryRow(ctx, applicantQuery+` WHERE a.id = $1`, applicationID)
	applicant, err := scanApplicant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	return applicant, nil
}

func scanApplication(row pgx.Row) (*types.Application, error) {
	var a types.Application
	var status string
	err := row.Scan(&a.ID, &a.CandidateID, &a.JobID, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	a.Status = types.ApplicationStatus(status)
	return &a, nil
}

func scanApplicant(row rowScanner) (*types.Applicant, error) {
	var out types.Applicant
	var status string
	var u types.User
	err := row.Scan(&out.ID, &out.CandidateID, &out.JobID, &status, &out.CreatedAt, &out.UpdatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Skills)
	if err != nil {
		return nil, err
	}
	out.Status = types.ApplicationStatus(status)
	out.Candidate = u.CandidateSummary()
	return &out, nil
}
