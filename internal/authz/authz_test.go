package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name      string
		principal types.Principal
		role      types.Role
		want      bool
	}{
		{"candidate as candidate", types.Principal{ID: id, Role: types.RoleCandidate}, types.RoleCandidate, true},
		{"recruiter as recruiter", types.Principal{ID: id, Role: types.RoleRecruiter}, types.RoleRecruiter, true},
		{"candidate as recruiter", types.Principal{ID: id, Role: types.RoleCandidate}, types.RoleRecruiter, false},
		{"empty role", types.Principal{ID: id}, types.RoleCandidate, false},
		{"unknown role", types.Principal{ID: id, Role: "admin"}, "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasRole(tt.principal, tt.role))
		})
	}
}

func TestIsOwner(t *testing.T) {
	owner := uuid.New()

	assert.True(t, IsOwner(types.Principal{ID: owner, Role: types.RoleRecruiter}, owner))
	assert.False(t, IsOwner(types.Principal{ID: uuid.New(), Role: types.RoleRecruiter}, owner))
	assert.False(t, IsOwner(types.Principal{ID: uuid.Nil}, uuid.Nil), "nil id must never own a resource")
}
