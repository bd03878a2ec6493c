// Package keywords is the gateway to the external keyword extractor. A call
// never fails the caller: any failure is reported as a degraded Result with
// an empty keyword set.
package keywords

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/job-portal/internal/types"
)

// Extractor maps free text to a keyword set.
type Extractor interface {
	Extract(ctx context.Context, text string) Result
}

// Result is the outcome of one extraction call. When Degraded is set,
// Keywords is empty and Err describes the failure.
type Result struct {
	Keywords []string
	Degraded bool
	Err      error
}

// OK reports whether the extraction succeeded.
func (r Result) OK() bool {
	return !r.Degraded
}

func success(keywords []string) Result {
	return Result{Keywords: Normalize(keywords)}
}

func degraded(err error) Result {
	return Result{Keywords: []string{}, Degraded: true, Err: err}
}

// Error describes a failed extraction. It matches types.ErrUpstreamDegraded
// under errors.Is.
type Error struct {
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extractor: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extractor: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes every extraction error an upstream degradation.
func (e *Error) Is(target error) bool {
	return target == types.ErrUpstreamDegraded
}

// Normalize trims and lowercases keywords, removing empties and duplicates.
// The result is sorted so equal sets compare equal.
func Normalize(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Overlap reports whether the two keyword sets share at least one keyword.
func Overlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, k := range a {
		set[k] = true
	}
	for _, k := range b {
		if set[k] {
			return true
		}
	}
	return false
}

// NopExtractor is used when extraction is disabled. Every call is degraded,
// so stored keywords are never replaced.
type NopExtractor struct{}

// Extract implements Extractor.
func (NopExtractor) Extract(_ context.Context, _ string) Result {
	return degraded(&Error{Provider: "none", Message: "keyword extraction disabled"})
}
