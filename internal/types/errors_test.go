package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001")

	assert.Equal(t, "job not found: "+id.String(), (&ErrNotFound{Resource: "job", ID: id}).Error())
	assert.Equal(t, "not authorized to update this job", (&ErrForbidden{Action: "update this job"}).Error())
	assert.Equal(t, "already applied to this job", (&ErrConflict{Message: "already applied to this job"}).Error())
	assert.Equal(t, "invalid title: is required", (&ErrInvalidArgument{Field: "title", Message: "is required"}).Error())
	assert.Equal(t,
		"invalid status: is required (allowed values: a, b)",
		(&ErrInvalidArgument{Field: "status", Message: "is required", Allowed: []string{"a", "b"}}).Error())
}

func TestErrorPredicates(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("outer: %w", err) }

	assert.True(t, IsNotFound(wrap(&ErrNotFound{Resource: "job"})))
	assert.True(t, IsForbidden(wrap(&ErrForbidden{Action: "x"})))
	assert.True(t, IsConflict(wrap(&ErrConflict{Message: "x"})))
	assert.True(t, IsInvalidArgument(wrap(&ErrInvalidArgument{Field: "x"})))

	plain := errors.New("boom")
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsForbidden(plain))
	assert.False(t, IsConflict(plain))
	assert.False(t, IsInvalidArgument(plain))
	assert.False(t, IsNotFound(&ErrConflict{}))
}
