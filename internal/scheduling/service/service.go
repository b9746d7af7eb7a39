package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/scheduling/repository"
	"ccc_backoffice/internal/scheduling/transport"
	"ccc_backoffice/platform/apperr"

	"github.com/google/uuid"
)

// Service provides business logic for work-start schedule proposals.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

// New creates a new scheduling service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus (set after construction to break circular deps).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Create proposes a work-start date. Any prior active proposal for the job
// is archived in the same transaction as the insert.
func (s *Service) Create(ctx context.Context, req transport.CreateProposalRequest) (*transport.ProposalResponse, error) {
	if req.ProposedStart.Before(time.Now()) {
		return nil, apperr.Validation("proposed start must be in the future")
	}

	now := time.Now()
	p := repository.Proposal{
		ID:            uuid.New(),
		JobID:         req.JobID,
		ProposedStart: req.ProposedStart,
		Status:        "pending",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateReplacingActive(ctx, &p); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ScheduleProposalCreated{
			BaseEvent:     events.NewBaseEvent(),
			ProposalID:    p.ID,
			JobID:         p.JobID,
			ProposedStart: p.ProposedStart,
		})
	}

	return transport.ToProposalResponse(&p), nil
}

// Get fetches a single proposal.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.ProposalResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return transport.ToProposalResponse(p), nil
}

// ListByJob returns a job's proposals.
func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]transport.ProposalResponse, error) {
	proposals, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ProposalResponse, len(proposals))
	for i := range proposals {
		out[i] = *transport.ToProposalResponse(&proposals[i])
	}
	return out, nil
}

// Confirm accepts the proposal; a confirmed proposal marks the job's work as
// scheduled for the stage gate.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*transport.ProposalResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, "confirmed"); err != nil {
		return nil, err
	}
	p.Status = "confirmed"

	if s.bus != nil {
		s.bus.Publish(ctx, events.ScheduleProposalConfirmed{
			BaseEvent:     events.NewBaseEvent(),
			ProposalID:    p.ID,
			JobID:         p.JobID,
			ProposedStart: p.ProposedStart,
		})
	}

	return transport.ToProposalResponse(p), nil
}

// Decline rejects the proposal.
func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*transport.ProposalResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, "declined"); err != nil {
		return nil, err
	}
	p.Status = "declined"

	return transport.ToProposalResponse(p), nil
}

// ArchiveExpired archives pending proposals whose start date has passed.
func (s *Service) ArchiveExpired(ctx context.Context) (int64, error) {
	return s.repo.ArchiveExpiredPending(ctx, time.Now())
}
