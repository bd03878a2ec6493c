package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/job-portal/internal/types"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		badLogin     *ErrInvalidCredentials
		invalidArg   *types.ErrInvalidArgument
		notFound     *types.ErrNotFound
		forbidden    *types.ErrForbidden
		conflict     *types.ErrConflict
		tooLargeBody *http.MaxBytesError
	)
	switch {
	case errors.As(err, &invalidArg):
		return http.StatusBadRequest
	case errors.As(err, &badLogin):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &emailExists), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &tooLargeBody):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes err with its mapped status. Internal errors are logged
// and replaced with a generic message.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
		errorResponse(w, status, "Internal server error")
		return
	}
	errorResponse(w, status, err.Error())
}
