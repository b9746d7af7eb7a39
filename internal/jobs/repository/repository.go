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

// ── Domain Models ─────────────────────────────────────────────────────────────

// Job is the database model for a job header.
type Job struct {
	ID                 uuid.UUID  `db:"id"`
	ContactID          uuid.UUID  `db:"contact_id"`
	PartnerID          *uuid.UUID `db:"partner_id"`
	Status             string     `db:"status"`
	DeliveryType       string     `db:"delivery_type"`
	QuoteType          string     `db:"quote_type"`
	QuotedValueCents   int64      `db:"quoted_value_cents"`
	QuoteResponse      *string    `db:"quote_response"`
	DepositRequired    bool       `db:"deposit_required"`
	DepositType        string     `db:"deposit_type"`
	DepositValue       int64      `db:"deposit_value"`
	DepositReceived    bool       `db:"deposit_received"`
	DiscountType       string     `db:"discount_type"`
	DiscountValue      int64      `db:"discount_value"`
	TaxEnabled         bool       `db:"tax_enabled"`
	TaxRateBps         int        `db:"tax_rate_bps"`
	PartnerChargeType  string     `db:"partner_charge_type"`
	PartnerChargeValue int64      `db:"partner_charge_value"`
	CCCMarginCents     int64      `db:"ccc_margin_cents"`
	MarkupPercent      *int64     `db:"markup_percent"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// ListParams contains parameters for listing jobs.
type ListParams struct {
	Status    *string
	ContactID *uuid.UUID
	PartnerID *uuid.UUID
	Page      int
	PageSize  int
}

const jobNotFoundMsg = "job not found"

const jobColumns = `
	id, contact_id, partner_id, status, delivery_type, quote_type,
	quoted_value_cents, quote_response,
	deposit_required, deposit_type, deposit_value, deposit_received,
	discount_type, discount_value, tax_enabled, tax_rate_bps,
	partner_charge_type, partner_charge_value, ccc_margin_cents,
	markup_percent, created_at, updated_at`

// ── Repository ────────────────────────────────────────────────────────────────

// Repository provides database operations for jobs.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new jobs repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new job.
func (r *Repository) Create(ctx context.Context, job *Job) error {
	query := `
		INSERT INTO jobs (
			id, contact_id, partner_id, status, delivery_type, quote_type,
			quoted_value_cents, quote_response,
			deposit_required, deposit_type, deposit_value, deposit_received,
			discount_type, discount_value, tax_enabled, tax_rate_bps,
			partner_charge_type, partner_charge_value, ccc_margin_cents,
			markup_percent, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`

	if _, err := r.pool.Exec(ctx, query,
		job.ID, job.ContactID, job.PartnerID, job.Status, job.DeliveryType, job.QuoteType,
		job.QuotedValueCents, job.QuoteResponse,
		job.DepositRequired, job.DepositType, job.DepositValue, job.DepositReceived,
		job.DiscountType, job.DiscountValue, job.TaxEnabled, job.TaxRateBps,
		job.PartnerChargeType, job.PartnerChargeValue, job.CCCMarginCents,
		job.MarkupPercent, job.CreatedAt, job.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetByID fetches a job by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var job Job
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.ContactID, &job.PartnerID, &job.Status, &job.DeliveryType, &job.QuoteType,
		&job.QuotedValueCents, &job.QuoteResponse,
		&job.DepositRequired, &job.DepositType, &job.DepositValue, &job.DepositReceived,
		&job.DiscountType, &job.DiscountValue, &job.TaxEnabled, &job.TaxRateBps,
		&job.PartnerChargeType, &job.PartnerChargeValue, &job.CCCMarginCents,
		&job.MarkupPercent, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(jobNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	return &job, nil
}

// List returns jobs matching the filter, newest first.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Job, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 25
	}

	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::uuid IS NULL OR contact_id = $2)
		  AND ($3::uuid IS NULL OR partner_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query,
		params.Status, params.ContactID, params.PartnerID,
		params.PageSize, (params.Page-1)*params.PageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(
			&job.ID, &job.ContactID, &job.PartnerID, &job.Status, &job.DeliveryType, &job.QuoteType,
			&job.QuotedValueCents, &job.QuoteResponse,
			&job.DepositRequired, &job.DepositType, &job.DepositValue, &job.DepositReceived,
			&job.DiscountType, &job.DiscountValue, &job.TaxEnabled, &job.TaxRateBps,
			&job.PartnerChargeType, &job.PartnerChargeValue, &job.CCCMarginCents,
			&job.MarkupPercent, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Update persists mutable job fields.
func (r *Repository) Update(ctx context.Context, job *Job) error {
	query := `
		UPDATE jobs SET
			partner_id = $2, delivery_type = $3, quote_type = $4,
			quoted_value_cents = $5, quote_response = $6,
			deposit_required = $7, deposit_type = $8, deposit_value = $9, deposit_received = $10,
			discount_type = $11, discount_value = $12, tax_enabled = $13, tax_rate_bps = $14,
			partner_charge_type = $15, partner_charge_value = $16, ccc_margin_cents = $17,
			markup_percent = $18, updated_at = $19
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		job.ID, job.PartnerID, job.DeliveryType, job.QuoteType,
		job.QuotedValueCents, job.QuoteResponse,
		job.DepositRequired, job.DepositType, job.DepositValue, job.DepositReceived,
		job.DiscountType, job.DiscountValue, job.TaxEnabled, job.TaxRateBps,
		job.PartnerChargeType, job.PartnerChargeValue, job.CCCMarginCents,
		job.MarkupPercent, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}

// UpdateStatus moves a job from one status to another. The WHERE clause on
// the old status makes concurrent duplicate transitions lose cleanly instead
// of silently double-applying.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("job status changed concurrently")
	}
	return nil
}

// SetCCCMargin stores the derived margin on the job header.
func (r *Repository) SetCCCMargin(ctx context.Context, id uuid.UUID, marginCents int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs SET ccc_margin_cents = $2, updated_at = $3 WHERE id = $1`,
		id, marginCents, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set job margin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}
	return nil
}
