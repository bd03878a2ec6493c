//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		field   string
	}{
		{
			name:    "valid request",
			request: CreateUserRequest{FirstName: "Asha", Email: "asha@example.com", Password: "password123", Role: RoleCandidate},
		},
		{
			name:    "missing email",
			request: CreateUserRequest{Password: "password123", Role: RoleCandidate},
			field:   "email",
		},
		{
			name:    "invalid email",
			request: CreateUserRequest{Email: "not-an-email", Password: "password123", Role: RoleCandidate},
			field:   "email",
		},
		{
			name:    "password too short",
			request: CreateUserRequest{Email: "a@example.com", Password: "short", Role: RoleRecruiter},
			field:   "password",
		},
		{
			name:    "password too long",
			request: CreateUserRequest{Email: "a@example.com", Password: string(make([]byte, 73)), Role: RoleRecruiter},
			field:   "password",
		},
		{
			name:    "unknown role",
			request: CreateUserRequest{Email: "a@example.com", Password: "password123", Role: "admin"},
			field:   "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidArgument
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCreateUserRequest_Validate_Normalizes(t *testing.T) {
	req := CreateUserRequest{
		FirstName: "  Asha ",
		LastName:  " Rao ",
		Email:     "  ASHA@Example.COM ",
		Password:  "password123",
		Role:      RoleCandidate,
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "asha@example.com", req.Email)
	assert.Equal(t, "Asha", req.FirstName)
	assert.Equal(t, "Rao", req.LastName)
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: " Someone@Example.com", Password: "x"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "someone@example.com", req.Email)

	assert.True(t, IsInvalidArgument((&LoginRequest{Email: "someone@example.com"}).Validate()))
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"go", "sql", "docker"}, NormalizeSkills([]string{" Go", "SQL", "go", "", "  ", "Docker"}))
	assert.Equal(t, []string{}, NormalizeSkills(nil))
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := User{ID: uuid.New(), Email: "a@example.com", Role: RoleRecruiter, PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestUser_Projections(t *testing.T) {
	u := User{ID: uuid.New(), FirstName: "Asha", LastName: "", Email: "a@example.com", Role: RoleCandidate}

	assert.Equal(t, "Asha", u.FullName())
	assert.Equal(t, Principal{ID: u.ID, Role: RoleCandidate}, u.Principal())

	summary := u.CandidateSummary()
	assert.Equal(t, "Asha", summary.Name)
	assert.Equal(t, []string{}, summary.Skills)
}
