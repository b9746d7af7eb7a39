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

// Transaction is one row in the append-only financial ledger. Rows are never
// updated or deleted.
type Transaction struct {
	ID                uuid.UUID  `db:"id"`
	JobID             *uuid.UUID `db:"job_id"`
	PartnerID         *uuid.UUID `db:"partner_id"`
	Type              string     `db:"type"` // income | expense
	AmountCents       int64      `db:"amount_cents"`
	GrossAmountCents  int64      `db:"gross_amount_cents"`
	ProfitAmountCents int64      `db:"profit_amount_cents"`
	PartnerCostCents  int64      `db:"partner_cost_cents"`
	SourceType        string     `db:"source_type"`
	Description       string     `db:"description"`
	CreatedAt         time.Time  `db:"created_at"`
}

// SettledCallout carries what the settlement transaction needs from the
// callout row it just flipped.
type SettledCallout struct {
	CalloutID           uuid.UUID
	JobID               *uuid.UUID
	PartnerID           uuid.UUID
	TotalCollectedCents int64
	FeeAmountCents      int64
}

// ListParams filters ledger queries.
type ListParams struct {
	JobID      *uuid.UUID
	PartnerID  *uuid.UUID
	SourceType *string
	Page       int
	PageSize   int
}

const transactionColumns = `
	id, job_id, partner_id, type, amount_cents,
	gross_amount_cents, profit_amount_cents, partner_cost_cents,
	source_type, description, created_at`

// Repository provides database operations for the financial ledger.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new finance repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends a ledger entry.
func (r *Repository) Insert(ctx context.Context, t *Transaction) error {
	query := `
		INSERT INTO financial_transactions (` + transactionColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	if _, err := r.pool.Exec(ctx, query,
		t.ID, t.JobID, t.PartnerID, t.Type, t.AmountCents,
		t.GrossAmountCents, t.ProfitAmountCents, t.PartnerCostCents,
		t.SourceType, t.Description, t.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// SettleCalloutFee flips the callout's fee_paid flag and appends the
// settlement ledger entry in one transaction. The conditional UPDATE is the
// idempotency guard: a second settlement attempt matches no row and returns
// a conflict, never a duplicate entry.
func (r *Repository) SettleCalloutFee(ctx context.Context, calloutID uuid.UUID) (*SettledCallout, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	var settled SettledCallout
	settled.CalloutID = calloutID

	err = tx.QueryRow(ctx,
		`UPDATE emergency_callouts
		 SET fee_paid = true, fee_paid_at = $2, updated_at = $2
		 WHERE id = $1 AND NOT fee_paid
		 RETURNING job_id, assigned_partner_id, total_collected_cents, callout_fee_amount_cents`,
		calloutID, now,
	).Scan(&settled.JobID, &settled.PartnerID, &settled.TotalCollectedCents, &settled.FeeAmountCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.settleMiss(ctx, calloutID)
		}
		return nil, fmt.Errorf("failed to settle callout fee: %w", err)
	}

	entry := Transaction{
		ID:                uuid.New(),
		JobID:             settled.JobID,
		PartnerID:         &settled.PartnerID,
		Type:              "income",
		AmountCents:       settled.FeeAmountCents,
		GrossAmountCents:  settled.TotalCollectedCents,
		ProfitAmountCents: settled.FeeAmountCents,
		PartnerCostCents:  settled.TotalCollectedCents - settled.FeeAmountCents,
		SourceType:        "callout_fee",
		Description:       "emergency callout fee settlement",
		CreatedAt:         now,
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO financial_transactions (`+transactionColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		entry.ID, entry.JobID, entry.PartnerID, entry.Type, entry.AmountCents,
		entry.GrossAmountCents, entry.ProfitAmountCents, entry.PartnerCostCents,
		entry.SourceType, entry.Description, entry.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert settlement entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return &settled, nil
}

// settleMiss distinguishes "already settled" from "no such callout".
func (r *Repository) settleMiss(ctx context.Context, calloutID uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM emergency_callouts WHERE id = $1)`,
		calloutID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check callout: %w", err)
	}
	if !exists {
		return apperr.NotFound("callout not found")
	}
	return apperr.Conflict("callout fee already settled")
}

// List returns ledger entries matching the filter, newest first.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Transaction, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 25
	}

	query := `SELECT ` + transactionColumns + ` FROM financial_transactions
		WHERE ($1::uuid IS NULL OR job_id = $1)
		  AND ($2::uuid IS NULL OR partner_id = $2)
		  AND ($3::text IS NULL OR source_type = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query,
		params.JobID, params.PartnerID, params.SourceType,
		params.PageSize, (params.Page-1)*params.PageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.JobID, &t.PartnerID, &t.Type, &t.AmountCents,
			&t.GrossAmountCents, &t.ProfitAmountCents, &t.PartnerCostCents,
			&t.SourceType, &t.Description, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// ExistsForJobPayment reports whether a job-payment entry already exists for
// the job. A belt-and-braces guard against duplicate paid events.
func (r *Repository) ExistsForJobPayment(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM financial_transactions
			WHERE job_id = $1 AND source_type = 'job_payment'
		)`,
		jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check job payment entry: %w", err)
	}
	return exists, nil
}
