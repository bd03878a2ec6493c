// Package recommend finds postings related to a job by shared keywords.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/keywords"
	"github.com/jonathan/job-portal/internal/types"
)

// DefaultLimit caps the number of recommendations when the caller gives none.
const DefaultLimit = 5

// Index reads job keyword sets. ListJobsSharingKeywords may over-fetch; the
// engine re-checks overlap and ordering.
type Index interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	ListJobsSharingKeywords(ctx context.Context, keywords []string, excludeID uuid.UUID, limit int) ([]types.Job, error)
}

// Engine computes recommendations. It never writes.
type Engine struct {
	index Index
}

// New returns an engine reading from index.
func New(index Index) *Engine {
	return &Engine{index: index}
}

// Recommend returns up to limit postings other than jobID that share at
// least one keyword with it, newest first. An unknown job or one without
// keywords yields an empty list. A limit below 1 means DefaultLimit.
func (e *Engine) Recommend(ctx context.Context, jobID uuid.UUID, limit int) ([]types.JobSummary, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	out := []types.JobSummary{}

	job, err := e.index.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil || len(job.Keywords) == 0 {
		return out, nil
	}

	related, err := e.index.ListJobsSharingKeywords(ctx, job.Keywords, job.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related jobs: %w", err)
	}

	matches := related[:0]
	for _, r := range related {
		if r.ID != job.ID && keywords.Overlap(r.Keywords, job.Keywords) {
			matches = append(matches, r)
		}
	}
	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].CreatedAt.After(matches[k].CreatedAt)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	for i := range matches {
		out = append(out, matches[i].Summary())
	}
	return out, nil
}
