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
// User Methods
// -----------------------------------------------------------------------------

const userColumns = `id, first_name, last_name, email, password_hash, role, skills, created_at, updated_at`

// CheckEmailExists reports whether a user with the given email exists
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// CreateUser inserts u and fills in its generated id and timestamps
func (db *DB) CreateUser(ctx context.Context, u *types.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, role, skills)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, string(u.Role), skills,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return &types.ErrConflict{Message: "email already registered: " + u.Email}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.Skills = skills
	return nil
}

// GetUser retrieves a user by ID, or nil if none exists
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by email, or nil if none exists
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateUserSkills replaces a user's skill list
func (db *DB) UpdateUserSkills(ctx context.Context, id uuid.UUID, skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET skills = $1, updated_at = NOW() WHERE id = $2`,
		skills, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update skills: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &types.ErrNotFound{Resource: "user", ID: id}
	}
	return nil
}

// DeleteUser removes a user. Used by tests to clean up.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	var role string
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&role, &u.Skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = types.Role(role)
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}
