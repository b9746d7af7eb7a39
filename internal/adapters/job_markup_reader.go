// Package adapters contains thin anti-corruption adapters that let modules
// consume each other's data through narrow interfaces instead of importing
// each other's services directly.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	jobsrepo "ccc_backoffice/internal/jobs/repository"
)

// JobMarkupReader adapts the jobs repository for the billing engine. It
// satisfies the billing service's MarkupSource interface.
type JobMarkupReader struct {
	repo *jobsrepo.Repository
}

// NewJobMarkupReader creates a new job markup adapter.
func NewJobMarkupReader(repo *jobsrepo.Repository) *JobMarkupReader {
	return &JobMarkupReader{repo: repo}
}

// JobMarkupPercent returns the job's markup override, or nil when the job
// carries none and the global default applies.
func (a *JobMarkupReader) JobMarkupPercent(ctx context.Context, jobID uuid.UUID) (*int64, error) {
	job, err := a.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("job markup adapter: %w", err)
	}
	return job.MarkupPercent, nil
}
