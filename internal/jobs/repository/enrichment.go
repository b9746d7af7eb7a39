package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Read-only aggregate queries backing the job enrichment read-model.
// Each returns a single derived signal; the enricher fans them out
// concurrently and assembles the flat record the validator consumes.

// CountQuoteItems counts priced line items attached directly to the job.
func (r *Repository) CountQuoteItems(ctx context.Context, jobID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM billing_line_items WHERE job_id = $1`,
		jobID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quote items: %w", err)
	}
	return count, nil
}

// HasSurveyScheduled reports whether the job has a survey that reached the
// scheduled or completed state.
func (r *Repository) HasSurveyScheduled(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM job_surveys
			WHERE job_id = $1 AND status IN ('scheduled', 'completed')
		)`,
		jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check scheduled survey: %w", err)
	}
	return exists, nil
}

// HasWorkScheduled reports whether a work start exists for the job: either a
// project-start calendar event (written by the calendar collaborator) or a
// confirmed, non-archived schedule proposal.
func (r *Repository) HasWorkScheduled(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM calendar_events
			WHERE job_id = $1 AND event_type = 'project_start'
		) OR EXISTS (
			SELECT 1 FROM job_schedule_proposals
			WHERE job_id = $1 AND NOT archived AND status = 'confirmed'
		)`,
		jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check scheduled work: %w", err)
	}
	return exists, nil
}

// HasSentInvoice reports whether a non-draft invoice document exists for the job.
func (r *Repository) HasSentInvoice(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM billing_documents
			WHERE job_id = $1 AND doc_type = 'invoice' AND status <> 'draft'
		)`,
		jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sent invoice: %w", err)
	}
	return exists, nil
}

// PaidAmountCents sums income ledger entries tagged as job payments plus any
// direct client payment records captured by the payments collaborator.
func (r *Repository) PaidAmountCents(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT
			COALESCE((SELECT SUM(amount_cents) FROM financial_transactions
				WHERE job_id = $1 AND type = 'income' AND source_type = 'job_payment'), 0)
			+
			COALESCE((SELECT SUM(amount_cents) FROM client_payments
				WHERE job_id = $1), 0)`,
		jobID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum job payments: %w", err)
	}
	return total, nil
}
