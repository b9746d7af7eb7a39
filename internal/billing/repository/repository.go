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

// Document is a quote or invoice belonging to a job.
type Document struct {
	ID                     uuid.UUID `db:"id"`
	JobID                  uuid.UUID `db:"job_id"`
	DocType                string    `db:"doc_type"`
	DocumentNumber         string    `db:"document_number"`
	Status                 string    `db:"status"`
	DiscountType           string    `db:"discount_type"`
	DiscountValue          int64     `db:"discount_value"`
	TaxEnabled             bool      `db:"tax_enabled"`
	TaxRateBps             int       `db:"tax_rate_bps"`
	SubtotalCents          int64     `db:"subtotal_cents"`
	DiscountAmountCents    int64     `db:"discount_amount_cents"`
	TaxAmountCents         int64     `db:"tax_amount_cents"`
	GrandTotalCents        int64     `db:"grand_total_cents"`
	DepositCalculatedCents int64     `db:"deposit_calculated_cents"`
	ShowInPortal           bool      `db:"show_in_portal"`
	Notes                  string    `db:"notes"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// LineItem is a priced line on a document.
type LineItem struct {
	ID             uuid.UUID `db:"id"`
	DocumentID     uuid.UUID `db:"document_id"`
	JobID          uuid.UUID `db:"job_id"`
	Description    string    `db:"description"`
	Quantity       float64   `db:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	LineTotalCents int64     `db:"line_total_cents"`
	SortOrder      int       `db:"sort_order"`
}

const documentNotFoundMsg = "document not found"

const documentColumns = `
	id, job_id, doc_type, document_number, status,
	discount_type, discount_value, tax_enabled, tax_rate_bps,
	subtotal_cents, discount_amount_cents, tax_amount_cents,
	grand_total_cents, deposit_calculated_cents,
	show_in_portal, notes, created_at, updated_at`

// ── Repository ────────────────────────────────────────────────────────────────

// Repository provides database operations for billing documents.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new billing repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NextDocumentNumber atomically generates the next document number for a
// document type, e.g. INV-2026-0001.
func (r *Repository) NextDocumentNumber(ctx context.Context, docType string) (string, error) {
	var nextNum int
	query := `
		INSERT INTO billing_counters (doc_type, last_number)
		VALUES ($1, 1)
		ON CONFLICT (doc_type) DO UPDATE SET last_number = billing_counters.last_number + 1
		RETURNING last_number`

	if err := r.pool.QueryRow(ctx, query, docType).Scan(&nextNum); err != nil {
		return "", fmt.Errorf("failed to generate document number: %w", err)
	}

	prefix := "QUO"
	if docType == "invoice" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().Year(), nextNum), nil
}

// CreateWithItems inserts a document and its line items in a single transaction.
func (r *Repository) CreateWithItems(ctx context.Context, doc *Document, items []LineItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	docQuery := `
		INSERT INTO billing_documents (` + documentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`

	if _, err := tx.Exec(ctx, docQuery,
		doc.ID, doc.JobID, doc.DocType, doc.DocumentNumber, doc.Status,
		doc.DiscountType, doc.DiscountValue, doc.TaxEnabled, doc.TaxRateBps,
		doc.SubtotalCents, doc.DiscountAmountCents, doc.TaxAmountCents,
		doc.GrandTotalCents, doc.DepositCalculatedCents,
		doc.ShowInPortal, doc.Notes, doc.CreatedAt, doc.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateWithItems replaces a document's fields and line items in one transaction.
func (r *Repository) UpdateWithItems(ctx context.Context, doc *Document, items []LineItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	docQuery := `
		UPDATE billing_documents SET
			discount_type = $2, discount_value = $3, tax_enabled = $4, tax_rate_bps = $5,
			subtotal_cents = $6, discount_amount_cents = $7, tax_amount_cents = $8,
			grand_total_cents = $9, deposit_calculated_cents = $10,
			show_in_portal = $11, notes = $12, updated_at = $13
		WHERE id = $1`

	tag, err := tx.Exec(ctx, docQuery,
		doc.ID,
		doc.DiscountType, doc.DiscountValue, doc.TaxEnabled, doc.TaxRateBps,
		doc.SubtotalCents, doc.DiscountAmountCents, doc.TaxAmountCents,
		doc.GrandTotalCents, doc.DepositCalculatedCents,
		doc.ShowInPortal, doc.Notes, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(documentNotFoundMsg)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM billing_line_items WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}
	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, items []LineItem) error {
	itemQuery := `
		INSERT INTO billing_line_items (
			id, document_id, job_id, description, quantity,
			unit_price_cents, line_total_cents, sort_order
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.DocumentID, item.JobID, item.Description, item.Quantity,
			item.UnitPriceCents, item.LineTotalCents, item.SortOrder,
		); err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}
	return nil
}

// GetByID fetches a document by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM billing_documents WHERE id = $1`

	var doc Document
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.JobID, &doc.DocType, &doc.DocumentNumber, &doc.Status,
		&doc.DiscountType, &doc.DiscountValue, &doc.TaxEnabled, &doc.TaxRateBps,
		&doc.SubtotalCents, &doc.DiscountAmountCents, &doc.TaxAmountCents,
		&doc.GrandTotalCents, &doc.DepositCalculatedCents,
		&doc.ShowInPortal, &doc.Notes, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(documentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}

// GetItems fetches a document's line items in display order.
func (r *Repository) GetItems(ctx context.Context, documentID uuid.UUID) ([]LineItem, error) {
	query := `
		SELECT id, document_id, job_id, description, quantity,
		       unit_price_cents, line_total_cents, sort_order
		FROM billing_line_items
		WHERE document_id = $1
		ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(
			&item.ID, &item.DocumentID, &item.JobID, &item.Description, &item.Quantity,
			&item.UnitPriceCents, &item.LineTotalCents, &item.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListByJob returns all documents for a job, newest first.
func (r *Repository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]Document, error) {
	return r.list(ctx,
		`SELECT `+documentColumns+` FROM billing_documents WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID)
}

// ListPortalVisible returns sent documents flagged for the client portal.
func (r *Repository) ListPortalVisible(ctx context.Context, jobID uuid.UUID) ([]Document, error) {
	return r.list(ctx,
		`SELECT `+documentColumns+` FROM billing_documents
		 WHERE job_id = $1 AND show_in_portal AND status <> 'draft'
		 ORDER BY created_at DESC`,
		jobID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID, &doc.JobID, &doc.DocType, &doc.DocumentNumber, &doc.Status,
			&doc.DiscountType, &doc.DiscountValue, &doc.TaxEnabled, &doc.TaxRateBps,
			&doc.SubtotalCents, &doc.DiscountAmountCents, &doc.TaxAmountCents,
			&doc.GrandTotalCents, &doc.DepositCalculatedCents,
			&doc.ShowInPortal, &doc.Notes, &doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateStatus moves a document to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE billing_documents SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(documentNotFoundMsg)
	}
	return nil
}
