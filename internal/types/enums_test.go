package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValid(t *testing.T) {
	assert.True(t, JobType("").Valid())
	assert.True(t, JobTypePartTime.Valid())
	assert.False(t, JobType("full-time").Valid(), "values are case-sensitive")

	assert.True(t, SalaryPeriod("").Valid())
	assert.True(t, SalaryPeriodMonthly.Valid())
	assert.False(t, SalaryPeriod("Weekly").Valid())

	assert.True(t, ExperienceLevel("").Valid())
	assert.True(t, ExperienceExecutive.Valid())
	assert.False(t, ExperienceLevel("Staff").Valid())

	assert.False(t, ApplicationStatus("").Valid(), "status has no unset value")
	assert.True(t, StatusViewed.Valid())
	assert.False(t, ApplicationStatus("hired").Valid())

	assert.True(t, RoleRecruiter.Valid())
	assert.False(t, Role("").Valid())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"applied", "viewed", "shortlisted", "rejected"}, Strings(ApplicationStatuses))
	assert.Equal(t, StatusApplied, ApplicationStatuses[0])
}

func TestValidateStatus(t *testing.T) {
	assert.NoError(t, ValidateStatus(StatusRejected))

	err := ValidateStatus("hired")
	require.Error(t, err)
	assert.Equal(t, `invalid status: unrecognized value "hired" (allowed values: applied, viewed, shortlisted, rejected)`, err.Error())

	err = (&UpdateStatusRequest{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is required")
}
