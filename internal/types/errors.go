package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrUpstreamDegraded marks a failed or timed-out keyword extraction. It is
// logged by the caller and never returned from a primary operation.
var ErrUpstreamDegraded = errors.New("keyword extractor degraded")

// ErrInvalidArgument indicates a malformed or missing field, or an
// unrecognized enumeration value.
type ErrInvalidArgument struct {
	Field   string
	Message string
	Allowed []string
}

func (e *ErrInvalidArgument) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(" (allowed values: %s)", strings.Join(e.Allowed, ", "))
	}
	return msg
}

// ErrNotFound indicates a referenced resource does not exist.
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrForbidden indicates an authenticated principal is not allowed to act
// on a resource.
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("not authorized to %s", e.Action)
}

// ErrConflict indicates the operation would violate a uniqueness or
// referential rule, e.g. a duplicate application.
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// IsNotFound reports whether err wraps an *ErrNotFound.
func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

// IsForbidden reports whether err wraps an *ErrForbidden.
func IsForbidden(err error) bool {
	var target *ErrForbidden
	return errors.As(err, &target)
}

// IsConflict reports whether err wraps an *ErrConflict.
func IsConflict(err error) bool {
	var target *ErrConflict
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err wraps an *ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	var target *ErrInvalidArgument
	return errors.As(err, &target)
}
