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

// Survey is a site survey carried out by a partner before quoting.
type Survey struct {
	ID            uuid.UUID  `db:"id"`
	JobID         uuid.UUID  `db:"job_id"`
	PartnerID     uuid.UUID  `db:"partner_id"`
	Status        string     `db:"status"`
	BookingStatus string     `db:"booking_status"`
	ProposedDate  *time.Time `db:"proposed_date"`
	ScheduledDate *time.Time `db:"scheduled_date"`
	Notes         string     `db:"notes"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

const surveyNotFoundMsg = "survey not found"

const surveyColumns = `
	id, job_id, partner_id, status, booking_status,
	proposed_date, scheduled_date, notes, created_at, updated_at`

// Repository provides database operations for surveys.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new surveys repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new survey.
func (r *Repository) Create(ctx context.Context, s *Survey) error {
	query := `
		INSERT INTO job_surveys (` + surveyColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	if _, err := r.pool.Exec(ctx, query,
		s.ID, s.JobID, s.PartnerID, s.Status, s.BookingStatus,
		s.ProposedDate, s.ScheduledDate, s.Notes, s.CreatedAt, s.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	return nil
}

// GetByID fetches a survey by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Survey, error) {
	query := `SELECT ` + surveyColumns + ` FROM job_surveys WHERE id = $1`

	var s Survey
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.JobID, &s.PartnerID, &s.Status, &s.BookingStatus,
		&s.ProposedDate, &s.ScheduledDate, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(surveyNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch survey: %w", err)
	}
	return &s, nil
}

// ListByJob returns a job's surveys, newest first.
func (r *Repository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]Survey, error) {
	query := `SELECT ` + surveyColumns + ` FROM job_surveys WHERE job_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	var surveys []Survey
	for rows.Next() {
		var s Survey
		if err := rows.Scan(
			&s.ID, &s.JobID, &s.PartnerID, &s.Status, &s.BookingStatus,
			&s.ProposedDate, &s.ScheduledDate, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

// UpdateStatus moves the survey lifecycle, optionally stamping the scheduled date.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, scheduledDate *time.Time) error {
	query := `
		UPDATE job_surveys SET
			status = $2,
			scheduled_date = COALESCE($3, scheduled_date),
			updated_at = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, scheduledDate, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update survey status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(surveyNotFoundMsg)
	}
	return nil
}

// UpdateBooking moves the booking negotiation, optionally replacing the proposed date.
func (r *Repository) UpdateBooking(ctx context.Context, id uuid.UUID, bookingStatus string, proposedDate *time.Time) error {
	query := `
		UPDATE job_surveys SET
			booking_status = $2,
			proposed_date = COALESCE($3, proposed_date),
			updated_at = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, bookingStatus, proposedDate, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update survey booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(surveyNotFoundMsg)
	}
	return nil
}
