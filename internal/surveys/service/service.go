package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/surveys/domain"
	"ccc_backoffice/internal/surveys/repository"
	"ccc_backoffice/internal/surveys/transport"
	"ccc_backoffice/platform/apperr"

	"github.com/google/uuid"
)

// Service provides business logic for site surveys.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

// New creates a new surveys service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus (set after construction to break circular deps).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Create requests a survey. The lifecycle starts at requested and the
// booking negotiation at pending_client.
func (s *Service) Create(ctx context.Context, req transport.CreateSurveyRequest) (*transport.SurveyResponse, error) {
	now := time.Now()
	survey := repository.Survey{
		ID:            uuid.New(),
		JobID:         req.JobID,
		PartnerID:     req.PartnerID,
		Status:        domain.StatusRequested,
		BookingStatus: domain.BookingPendingClient,
		ProposedDate:  req.ProposedDate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, &survey); err != nil {
		return nil, err
	}
	return transport.ToSurveyResponse(&survey), nil
}

// Get fetches a single survey.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.SurveyResponse, error) {
	survey, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return transport.ToSurveyResponse(survey), nil
}

// ListByJob returns a job's surveys.
func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]transport.SurveyResponse, error) {
	surveys, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.SurveyResponse, len(surveys))
	for i := range surveys {
		out[i] = *transport.ToSurveyResponse(&surveys[i])
	}
	return out, nil
}

// UpdateStatus advances the survey lifecycle. Moving to scheduled requires a
// scheduled date.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateSurveyStatusRequest) (*transport.SurveyResponse, error) {
	survey, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionStatus(survey.Status, req.Status) {
		return nil, apperr.Validation("invalid survey status transition")
	}
	if req.Status == domain.StatusScheduled && req.ScheduledDate == nil && survey.ScheduledDate == nil {
		return nil, apperr.Validation("scheduled date is required to schedule a survey")
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, req.ScheduledDate); err != nil {
		return nil, err
	}
	oldStatus := survey.Status
	survey.Status = req.Status
	if req.ScheduledDate != nil {
		survey.ScheduledDate = req.ScheduledDate
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.SurveyStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			SurveyID:  survey.ID,
			JobID:     survey.JobID,
			PartnerID: survey.PartnerID,
			OldStatus: oldStatus,
			NewStatus: req.Status,
		})
	}

	return transport.ToSurveyResponse(survey), nil
}

// UpdateBooking advances the date negotiation. A client counter-offer loops
// back to pending_client with the new proposed date.
func (s *Service) UpdateBooking(ctx context.Context, id uuid.UUID, req transport.UpdateBookingRequest) (*transport.SurveyResponse, error) {
	survey, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionBooking(survey.BookingStatus, req.BookingStatus) {
		return nil, apperr.Validation("invalid survey booking transition")
	}

	if err := s.repo.UpdateBooking(ctx, id, req.BookingStatus, req.ProposedDate); err != nil {
		return nil, err
	}
	oldBooking := survey.BookingStatus
	survey.BookingStatus = req.BookingStatus
	if req.ProposedDate != nil {
		survey.ProposedDate = req.ProposedDate
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.SurveyBookingChanged{
			BaseEvent:        events.NewBaseEvent(),
			SurveyID:         survey.ID,
			JobID:            survey.JobID,
			OldBookingStatus: oldBooking,
			NewBookingStatus: req.BookingStatus,
		})
	}

	return transport.ToSurveyResponse(survey), nil
}
