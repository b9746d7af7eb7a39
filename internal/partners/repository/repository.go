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

// Partner is a subcontracting company that delivers work or emergency callouts.
type Partner struct {
	ID                 uuid.UUID `db:"id"`
	Name               string    `db:"name"`
	ContactEmail       string    `db:"contact_email"`
	ContactPhone       string    `db:"contact_phone"`
	DefaultChargeType  string    `db:"default_charge_type"`
	DefaultChargeValue int64     `db:"default_charge_value"`
	Active             bool      `db:"active"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

const partnerNotFoundMsg = "partner not found"

const partnerColumns = `
	id, name, contact_email, contact_phone,
	default_charge_type, default_charge_value, active, created_at, updated_at`

// Repository provides database operations for partners.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new partners repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new partner.
func (r *Repository) Create(ctx context.Context, p *Partner) error {
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	if _, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.ContactEmail, p.ContactPhone,
		p.DefaultChargeType, p.DefaultChargeValue, p.Active, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert partner: %w", err)
	}
	return nil
}

// GetByID fetches a partner by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`

	var p Partner
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.ContactEmail, &p.ContactPhone,
		&p.DefaultChargeType, &p.DefaultChargeValue, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(partnerNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch partner: %w", err)
	}
	return &p, nil
}

// List returns partners, optionally restricted to active ones.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners
		WHERE (NOT $1::bool OR active)
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(
			&p.ID, &p.Name, &p.ContactEmail, &p.ContactPhone,
			&p.DefaultChargeType, &p.DefaultChargeValue, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// Update persists partner fields.
func (r *Repository) Update(ctx context.Context, p *Partner) error {
	query := `
		UPDATE partners SET
			name = $2, contact_email = $3, contact_phone = $4,
			default_charge_type = $5, default_charge_value = $6, active = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.ContactEmail, p.ContactPhone,
		p.DefaultChargeType, p.DefaultChargeValue, p.Active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(partnerNotFoundMsg)
	}
	return nil
}
