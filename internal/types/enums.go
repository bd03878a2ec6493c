package types

// JobType is the employment arrangement of a posting. The zero value means unset.
type JobType string

// Supported job types.
const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
)

// JobTypes lists every recognized job type in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract}

// Valid reports whether t is unset or one of JobTypes.
func (t JobType) Valid() bool {
	return t == "" || contains(JobTypes, t)
}

// SalaryPeriod is the unit salaryMin/salaryMax are quoted in. The zero value means unset.
type SalaryPeriod string

// Supported salary periods.
const (
	SalaryPeriodYearly  SalaryPeriod = "Yearly"
	SalaryPeriodMonthly SalaryPeriod = "Monthly"
	SalaryPeriodHourly  SalaryPeriod = "Hourly"
)

// SalaryPeriods lists every recognized salary period.
var SalaryPeriods = []SalaryPeriod{SalaryPeriodYearly, SalaryPeriodMonthly, SalaryPeriodHourly}

// Valid reports whether p is unset or one of SalaryPeriods.
func (p SalaryPeriod) Valid() bool {
	return p == "" || contains(SalaryPeriods, p)
}

// ExperienceLevel is the seniority a posting targets. The zero value means unset.
type ExperienceLevel string

// Supported experience levels.
const (
	ExperienceInternship ExperienceLevel = "Internship"
	ExperienceEntry      ExperienceLevel = "Entry-level"
	ExperienceMid        ExperienceLevel = "Mid-level"
	ExperienceSenior     ExperienceLevel = "Senior-level"
	ExperienceLead       ExperienceLevel = "Lead"
	ExperienceExecutive  ExperienceLevel = "Executive"
)

// ExperienceLevels lists every recognized experience level, junior first.
var ExperienceLevels = []ExperienceLevel{
	ExperienceInternship, ExperienceEntry, ExperienceMid,
	ExperienceSenior, ExperienceLead, ExperienceExecutive,
}

// Valid reports whether l is unset or one of ExperienceLevels.
func (l ExperienceLevel) Valid() bool {
	return l == "" || contains(ExperienceLevels, l)
}

// ApplicationStatus is the flat status tag of an application. Any status may
// be set from any other.
type ApplicationStatus string

// Application statuses.
const (
	StatusApplied     ApplicationStatus = "applied"
	StatusViewed      ApplicationStatus = "viewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every recognized status; the first is the initial one.
var ApplicationStatuses = []ApplicationStatus{StatusApplied, StatusViewed, StatusShortlisted, StatusRejected}

// Valid reports whether s is one of ApplicationStatuses. Unlike the job
// enumerations, an empty status is not valid.
func (s ApplicationStatus) Valid() bool {
	return contains(ApplicationStatuses, s)
}

// Role is the role of an authenticated principal.
type Role string

// Principal roles.
const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Roles lists every recognized role.
var Roles = []Role{RoleCandidate, RoleRecruiter}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	return contains(Roles, r)
}

// Strings converts a slice of string-kinded enum values to plain strings,
// used when reporting allowed values.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
