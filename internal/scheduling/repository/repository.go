package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ccc_backoffice/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Proposal is a proposed work-start date for a job. At most one proposal per
// job is active (non-archived) at a time.
type Proposal struct {
	ID            uuid.UUID `db:"id"`
	JobID         uuid.UUID `db:"job_id"`
	ProposedStart time.Time `db:"proposed_start"`
	Status        string    `db:"status"`
	Archived      bool      `db:"archived"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

const proposalNotFoundMsg = "schedule proposal not found"

const proposalColumns = `
	id, job_id, proposed_start, status, archived, created_at, updated_at`

// Repository provides database operations for schedule proposals.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new scheduling repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateReplacingActive archives every active proposal for the job and
// inserts the new one in a single transaction, preserving the one-active
// invariant under concurrent creates.
func (r *Repository) CreateReplacingActive(ctx context.Context, p *Proposal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE job_schedule_proposals SET archived = true, updated_at = $2
		 WHERE job_id = $1 AND NOT archived`,
		p.JobID, time.Now(),
	); err != nil {
		return fmt.Errorf("failed to archive prior proposals: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO job_schedule_proposals (`+proposalColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.JobID, p.ProposedStart, p.Status, p.Archived, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert proposal: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID fetches a proposal by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM job_schedule_proposals WHERE id = $1`

	var p Proposal
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.JobID, &p.ProposedStart, &p.Status, &p.Archived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(proposalNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch proposal: %w", err)
	}
	return &p, nil
}

// ListByJob returns a job's proposals, active first, newest first.
func (r *Repository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM job_schedule_proposals
		WHERE job_id = $1
		ORDER BY archived, created_at DESC`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []Proposal
	for rows.Next() {
		var p Proposal
		if err := rows.Scan(
			&p.ID, &p.JobID, &p.ProposedStart, &p.Status, &p.Archived, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// UpdateStatus moves an active pending proposal to confirmed or declined.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE job_schedule_proposals SET status = $2, updated_at = $3
		 WHERE id = $1 AND NOT archived AND status = 'pending'`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("proposal is not pending")
	}
	return nil
}

// ArchiveExpiredPending archives pending proposals whose proposed start has
// passed. Returns the number archived; used by the maintenance task.
func (r *Repository) ArchiveExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE job_schedule_proposals SET archived = true, updated_at = $1
		 WHERE NOT archived AND status = 'pending' AND proposed_start < $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to archive expired proposals: %w", err)
	}
	return tag.RowsAffected(), nil
}
