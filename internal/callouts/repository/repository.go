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

// Callout is an emergency callout delivered by a partner. The partner keeps
// the money collected on site; the fee column records what they owe back.
type Callout struct {
	ID                    uuid.UUID  `db:"id"`
	JobID                 *uuid.UUID `db:"job_id"`
	AssignedPartnerID     uuid.UUID  `db:"assigned_partner_id"`
	Description           string     `db:"description"`
	TotalCollectedCents   int64      `db:"total_collected_cents"`
	CalloutFeePercent     int64      `db:"callout_fee_percent"`
	CalloutFeeAmountCents int64      `db:"callout_fee_amount_cents"`
	FeePaid               bool       `db:"fee_paid"`
	FeePaidAt             *time.Time `db:"fee_paid_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

const calloutNotFoundMsg = "callout not found"

const calloutColumns = `
	id, job_id, assigned_partner_id, description,
	total_collected_cents, callout_fee_percent, callout_fee_amount_cents,
	fee_paid, fee_paid_at, created_at, updated_at`

// Repository provides database operations for emergency callouts.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new callouts repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new callout.
func (r *Repository) Create(ctx context.Context, c *Callout) error {
	query := `
		INSERT INTO emergency_callouts (` + calloutColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	if _, err := r.pool.Exec(ctx, query,
		c.ID, c.JobID, c.AssignedPartnerID, c.Description,
		c.TotalCollectedCents, c.CalloutFeePercent, c.CalloutFeeAmountCents,
		c.FeePaid, c.FeePaidAt, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert callout: %w", err)
	}
	return nil
}

// GetByID fetches a callout by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Callout, error) {
	query := `SELECT ` + calloutColumns + ` FROM emergency_callouts WHERE id = $1`

	var c Callout
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.JobID, &c.AssignedPartnerID, &c.Description,
		&c.TotalCollectedCents, &c.CalloutFeePercent, &c.CalloutFeeAmountCents,
		&c.FeePaid, &c.FeePaidAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(calloutNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch callout: %w", err)
	}
	return &c, nil
}

// List returns callouts, optionally only those with outstanding fees.
func (r *Repository) List(ctx context.Context, outstandingOnly bool) ([]Callout, error) {
	query := `SELECT ` + calloutColumns + ` FROM emergency_callouts
		WHERE (NOT $1::bool OR NOT fee_paid)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, outstandingOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list callouts: %w", err)
	}
	defer rows.Close()

	var callouts []Callout
	for rows.Next() {
		var c Callout
		if err := rows.Scan(
			&c.ID, &c.JobID, &c.AssignedPartnerID, &c.Description,
			&c.TotalCollectedCents, &c.CalloutFeePercent, &c.CalloutFeeAmountCents,
			&c.FeePaid, &c.FeePaidAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan callout: %w", err)
		}
		callouts = append(callouts, c)
	}
	return callouts, rows.Err()
}

// ListOutstandingOlderThan returns unpaid callouts created before the cutoff.
// Used by the fee reminder task.
func (r *Repository) ListOutstandingOlderThan(ctx context.Context, cutoff time.Time) ([]Callout, error) {
	query := `SELECT ` + calloutColumns + ` FROM emergency_callouts
		WHERE NOT fee_paid AND created_at < $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding callouts: %w", err)
	}
	defer rows.Close()

	var callouts []Callout
	for rows.Next() {
		var c Callout
		if err := rows.Scan(
			&c.ID, &c.JobID, &c.AssignedPartnerID, &c.Description,
			&c.TotalCollectedCents, &c.CalloutFeePercent, &c.CalloutFeeAmountCents,
			&c.FeePaid, &c.FeePaidAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan callout: %w", err)
		}
		callouts = append(callouts, c)
	}
	return callouts, rows.Err()
}
