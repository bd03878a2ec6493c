package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/server/middleware"
	"github.com/jonathan/job-portal/internal/types"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into v. On failure it writes a 400 (or
// 413 for an oversized body) and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		if errors.Is(err, io.EOF) {
			errorResponse(w, http.StatusBadRequest, "Request body is required")
			return false
		}
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathID parses the named path value as a UUID, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// principal returns the caller set by the auth middleware. Routes that use
// it are always wrapped by that middleware.
func principal(w http.ResponseWriter, r *http.Request) (types.Principal, bool) {
	p, err := middleware.GetPrincipal(r)
	if err != nil {
		log.Printf("[server] %s %s: %v", r.Method, r.URL.Path, err)
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return types.Principal{}, false
	}
	return p, true
}

// parseQueryInt reads an integer query parameter, falling back to
// defaultValue when absent or malformed and capping at maxValue when it is
// positive.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}
