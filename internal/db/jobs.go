package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/job-portal/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, title, description, COALESCE(location, ''), COALESCE(job_type, ''),
	COALESCE(company_name, ''), keywords, salary_min, salary_max, salary_currency,
	COALESCE(salary_period, ''), COALESCE(experience_level, ''), owner_id, created_at, updated_at`

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateJob inserts job and fills in its generated id and timestamps
func (db *DB) CreateJob(ctx context.Context, job *types.Job) error {
	kws := job.Keywords
	if kws == nil {
		kws = []string{}
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, location, job_type, company_name, keywords,
		                   salary_min, salary_max, salary_currency, salary_period,
		                   experience_level, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		job.Title, job.Description, nullIfEmpty(job.Location), nullIfEmpty(string(job.JobType)),
		nullIfEmpty(job.CompanyName), kws, job.SalaryMin, job.SalaryMax, job.SalaryCurrency,
		nullIfEmpty(string(job.SalaryPeriod)), nullIfEmpty(string(job.ExperienceLevel)), job.OwnerID,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return &types.ErrNotFound{Resource: "user", ID: job.OwnerID}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}
	job.Keywords = kws
	return nil
}

// GetJob retrieves a job by ID, or nil if none exists
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// UpdateJob locks the job row, applies mutate and writes the editable fields
// back in one transaction. Keywords, owner and creation time are not touched.
// An error from mutate rolls back and is returned as is.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, mutate func(*types.Job) error) (*types.Job, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			log.Printf("[db] rollback failed: %v", rErr)
		}
	}()

	job, err := scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &types.ErrNotFound{Resource: "job", ID: id}
		}
		return nil, fmt.Errorf("failed to lock job: %w", err)
	}
	if err := mutate(job); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE jobs SET title = $1, description = $2, location = $3, job_type = $4,
		                 company_name = $5, salary_min = $6, salary_max = $7,
		                 salary_currency = $8, salary_period = $9, experience_level = $10,
		                 updated_at = clock_timestamp()
		 WHERE id = $11
		 RETURNING keywords, owner_id, created_at, updated_at`,
		job.Title, job.Description, nullIfEmpty(job.Location), nullIfEmpty(string(job.JobType)),
		nullIfEmpty(job.CompanyName), job.SalaryMin, job.SalaryMax, job.SalaryCurrency,
		nullIfEmpty(string(job.SalaryPeriod)), nullIfEmpty(string(job.ExperienceLevel)), id,
	).Scan(&job.Keywords, &job.OwnerID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit job update: %w", err)
	}
	job.ID = id
	if job.Keywords == nil {
		job.Keywords = []string{}
	}
	return job, nil
}

// SetJobKeywords replaces a job's keyword set while its description is still
// description. It reports whether a row was written.
func (db *DB) SetJobKeywords(ctx context.Context, id uuid.UUID, description string, keywords []string) (bool, error) {
	if keywords == nil {
		keywords = []string{}
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET keywords = $1, updated_at = clock_timestamp()
		 WHERE id = $2 AND description = $3`,
		keywords, id, description,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set job keywords: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteJob removes a job. Applications reference jobs with ON DELETE
// RESTRICT, so a job with applications yields a conflict.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return &types.ErrConflict{Message: "job has applications and cannot be deleted"}
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &types.ErrNotFound{Resource: "job", ID: id}
	}
	return nil
}

// SearchJobs returns jobs whose keywords overlap terms or whose title
// contains any term, newest first. Empty terms return all jobs.
func (db *DB) SearchJobs(ctx context.Context, terms []string) ([]types.Job, error) {
	if len(terms) == 0 {
		return db.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	}

	patterns := make([]string, len(terms))
	for i, term := range terms {
		patterns[i] = likePattern(term)
	}
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE keywords && $1::text[] OR title ILIKE ANY($2::text[])
		 ORDER BY created_at DESC`,
		terms, patterns,
	)
}

// ListJobsByOwner returns the owner's jobs, newest first
func (db *DB) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]types.Job, error) {
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
}

// ListJobsSharingKeywords returns up to limit jobs other than excludeID whose
// keyword set overlaps keywords, newest first
func (db *DB) ListJobsSharingKeywords(ctx context.Context, keywords []string, excludeID uuid.UUID, limit int) ([]types.Job, error) {
	if len(keywords) == 0 {
		return []types.Job{}, nil
	}
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE id <> $1 AND keywords && $2::text[]
		 ORDER BY created_at DESC
		 LIMIT $3`,
		excludeID, keywords, limit,
	)
}

// CountApplicationsForJob returns how many applications reference a job
func (db *DB) CountApplicationsForJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1`,
		jobID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}

func (db *DB) queryJobs(ctx context.Context, sql string, args ...any) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row rowScanner) (*types.Job, error) {
	var j types.Job
	var jobType, period, level string
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &jobType,
		&j.CompanyName, &j.Keywords, &j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency,
		&period, &level, &j.OwnerID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.JobType = types.JobType(jobType)
	j.SalaryPeriod = types.SalaryPeriod(period)
	j.ExperienceLevel = types.ExperienceLevel(level)
	if j.Keywords == nil {
		j.Keywords = []string{}
	}
	return &j, nil
}
