package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSalaryCurrency is applied when a posting does not name a currency.
const DefaultSalaryCurrency = "INR"

// Job is a posting owned by the recruiter whose id is OwnerID. Keywords are
// written only by the keyword extraction step.
type Job struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Location        string          `json:"location,omitempty"`
	JobType         JobType         `json:"job_type,omitempty"`
	CompanyName     string          `json:"company_name,omitempty"`
	Keywords        []string        `json:"keywords"`
	SalaryMin       *int            `json:"salary_min,omitempty"`
	SalaryMax       *int            `json:"salary_max,omitempty"`
	SalaryCurrency  string          `json:"salary_currency"`
	SalaryPeriod    SalaryPeriod    `json:"salary_period,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Summary returns the minimal projection of the job.
func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		JobType:     j.JobType,
	}
}

// JobSummary is the projection of a Job embedded in listings.
type JobSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name,omitempty"`
	Location    string    `json:"location,omitempty"`
	JobType     JobType   `json:"job_type,omitempty"`
}

// CreateJobRequest carries the recruiter-supplied fields of a new posting.
type CreateJobRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Description     string          `json:"description" validate:"required"`
	Location        string          `json:"location,omitempty" validate:"max=255"`
	JobType         JobType         `json:"job_type,omitempty"`
	CompanyName     string          `json:"company_name,omitempty" validate:"max=255"`
	SalaryMin       *int            `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *int            `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	SalaryCurrency  string          `json:"salary_currency,omitempty" validate:"max=10"`
	SalaryPeriod    SalaryPeriod    `json:"salary_period,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
}

// Validate trims text fields and checks required fields, enumerations and
// the salary range.
func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.SalaryCurrency = strings.TrimSpace(r.SalaryCurrency)
	if strings.TrimSpace(r.Description) == "" {
		r.Description = ""
	}

	if err := validateStruct(r); err != nil {
		return err
	}
	if err := validateJobEnums(r.JobType, r.SalaryPeriod, r.ExperienceLevel); err != nil {
		return err
	}
	return ValidateSalaryRange(r.SalaryMin, r.SalaryMax)
}

// NewJob builds an unpersisted Job owned by ownerID with an empty keyword set.
func (r *CreateJobRequest) NewJob(ownerID uuid.UUID) *Job {
	currency := r.SalaryCurrency
	if currency == "" {
		currency = DefaultSalaryCurrency
	}
	return &Job{
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		JobType:         r.JobType,
		CompanyName:     r.CompanyName,
		Keywords:        []string{},
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		SalaryCurrency:  currency,
		SalaryPeriod:    r.SalaryPeriod,
		ExperienceLevel: r.ExperienceLevel,
		OwnerID:         ownerID,
	}
}

// UpdateJobRequest is a partial update: nil fields are left unchanged.
type UpdateJobRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string          `json:"description,omitempty"`
	Location        *string          `json:"location,omitempty" validate:"omitempty,max=255"`
	JobType         *JobType         `json:"job_type,omitempty"`
	CompanyName     *string          `json:"company_name,omitempty" validate:"omitempty,max=255"`
	SalaryMin       *int             `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *int             `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	SalaryCurrency  *string          `json:"salary_currency,omitempty" validate:"omitempty,max=10"`
	SalaryPeriod    *SalaryPeriod    `json:"salary_period,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
}

// Validate checks the supplied fields. Title and description may be
// omitted but not blanked.
func (r *UpdateJobRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return &ErrInvalidArgument{Field: "title", Message: "must not be empty"}
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return &ErrInvalidArgument{Field: "description", Message: "must not be empty"}
	}
	var jobType JobType
	if r.JobType != nil {
		jobType = *r.JobType
	}
	var period SalaryPeriod
	if r.SalaryPeriod != nil {
		period = *r.SalaryPeriod
	}
	var level ExperienceLevel
	if r.ExperienceLevel != nil {
		level = *r.ExperienceLevel
	}
	return validateJobEnums(jobType, period, level)
}

// Apply copies the supplied fields onto job and reports whether the
// description changed byte-for-byte.
func (r *UpdateJobRequest) Apply(job *Job) (descriptionChanged bool) {
	if r.Title != nil {
		job.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil && *r.Description != job.Description {
		job.Description = *r.Description
		descriptionChanged = true
	}
	if r.Location != nil {
		job.Location = strings.TrimSpace(*r.Location)
	}
	if r.JobType != nil {
		job.JobType = *r.JobType
	}
	if r.CompanyName != nil {
		job.CompanyName = strings.TrimSpace(*r.CompanyName)
	}
	if r.SalaryMin != nil {
		job.SalaryMin = r.SalaryMin
	}
	if r.SalaryMax != nil {
		job.SalaryMax = r.SalaryMax
	}
	if r.SalaryCurrency != nil {
		job.SalaryCurrency = strings.TrimSpace(*r.SalaryCurrency)
		if job.SalaryCurrency == "" {
			job.SalaryCurrency = DefaultSalaryCurrency
		}
	}
	if r.SalaryPeriod != nil {
		job.SalaryPeriod = *r.SalaryPeriod
	}
	if r.ExperienceLevel != nil {
		job.ExperienceLevel = *r.ExperienceLevel
	}
	return descriptionChanged
}

// ValidateSalaryRange enforces salaryMax >= salaryMin when both are present.
func ValidateSalaryRange(minSalary, maxSalary *int) error {
	if minSalary != nil && *minSalary < 0 {
		return &ErrInvalidArgument{Field: "salary_min", Message: "must be non-negative"}
	}
	if maxSalary != nil && *maxSalary < 0 {
		return &ErrInvalidArgument{Field: "salary_max", Message: "must be non-negative"}
	}
	if minSalary != nil && maxSalary != nil && *maxSalary < *minSalary {
		return &ErrInvalidArgument{Field: "salary_max", Message: "must be greater than or equal to salary_min"}
	}
	return nil
}

func validateJobEnums(jobType JobType, period SalaryPeriod, level ExperienceLevel) error {
	if !jobType.Valid() {
		return &ErrInvalidArgument{Field: "job_type", Message: "unrecognized value " + quote(string(jobType)), Allowed: Strings(JobTypes)}
	}
	if !period.Valid() {
		return &ErrInvalidArgument{Field: "salary_period", Message: "unrecognized value " + quote(string(period)), Allowed: Strings(SalaryPeriods)}
	}
	if !level.Valid() {
		return &ErrInvalidArgument{Field: "experience_level", Message: "unrecognized value " + quote(string(level)), Allowed: Strings(ExperienceLevels)}
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}
