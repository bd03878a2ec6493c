// Package types defines the data model, request payloads and error taxonomy
// shared by the job portal packages.
package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// CreateUserRequest represents the request to register a new user.
type CreateUserRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"max=100"`
	LastName  string `json:"last_name,omitempty" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      Role   `json:"role" validate:"required,oneof=candidate recruiter"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateSkillsRequest replaces the caller's skill list.
type UpdateSkillsRequest struct {
	Skills []string `json:"skills" validate:"required"`
}

// User is a registered principal with profile data. The password hash is
// never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Skills       []string  `json:"skills"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the principal the user authenticates as.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// CandidateSummary returns the projection of the user shown to recruiters.
func (u *User) CandidateSummary() CandidateSummary {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateSummary{ID: u.ID, Name: u.FullName(), Email: u.Email, Skills: skills}
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate validates the CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return validateStruct(r)
}

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validateStruct(r)
}

// Validate validates the UpdateSkillsRequest.
func (r *UpdateSkillsRequest) Validate() error {
	return validateStruct(r)
}

// NormalizeSkills trims and lowercases skills, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
