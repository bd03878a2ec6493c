// Package authz holds the authorization predicates consulted before a job or
// application is read or mutated. The predicates have no side effects; the
// calling operation reports a false result as a forbidden error.
package authz

import (
	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/types"
)

// HasRole reports whether the principal holds role.
func HasRole(p types.Principal, role types.Role) bool {
	return p.Role.Valid() && p.Role == role
}

// IsOwner reports whether the principal is the owner identified by ownerID.
// The nil id never owns anything.
func IsOwner(p types.Principal, ownerID uuid.UUID) bool {
	return p.ID != uuid.Nil && p.ID == ownerID
}
