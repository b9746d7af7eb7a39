package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/jobs/domain"
	"ccc_backoffice/internal/jobs/repository"
	"ccc_backoffice/internal/jobs/transport"
	"ccc_backoffice/platform/apperr"

	"github.com/google/uuid"
)

// JobStore is the write-side interface the service needs beyond enrichment.
type JobStore interface {
	EnrichmentStore
	Create(ctx context.Context, job *repository.Job) error
	List(ctx context.Context, params repository.ListParams) ([]repository.Job, error)
	Update(ctx context.Context, job *repository.Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error
}

// Service provides business logic for jobs: CRUD plus the stage governance
// operations (validate, readiness, gated status updates).
type Service struct {
	store    JobStore
	enricher *Enricher
	registry *domain.Registry
	bus      events.Bus
}

// New creates a new jobs service.
func New(store JobStore, registry *domain.Registry) *Service {
	return &Service{
		store:    store,
		enricher: NewEnricher(store),
		registry: registry,
	}
}

// SetEventBus injects the event bus (set after construction to break circular deps).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Create creates a new job at the start of the pipeline.
func (s *Service) Create(ctx context.Context, req transport.CreateJobRequest) (*transport.JobResponse, error) {
	now := time.Now()
	job := repository.Job{
		ID:                 uuid.New(),
		ContactID:          req.ContactID,
		PartnerID:          req.PartnerID,
		Status:             string(domain.StageNewEnquiry),
		DeliveryType:       defaultString(req.DeliveryType, domain.DeliveryInHouse),
		QuoteType:          req.QuoteType,
		QuotedValueCents:   req.QuotedValueCents,
		DepositRequired:    req.DepositRequired,
		DepositType:        defaultString(req.DepositType, domain.ValueTypePercentage),
		DepositValue:       req.DepositValue,
		DiscountType:       defaultString(req.DiscountType, domain.ValueTypePercentage),
		DiscountValue:      req.DiscountValue,
		TaxEnabled:         req.TaxEnabled,
		TaxRateBps:         req.TaxRateBps,
		PartnerChargeType:  defaultString(req.PartnerChargeType, domain.ValueTypePercentage),
		PartnerChargeValue: req.PartnerChargeValue,
		MarkupPercent:      req.MarkupPercent,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.store.Create(ctx, &job); err != nil {
		return nil, err
	}
	return transport.ToJobResponse(&job), nil
}

// Get fetches a single job.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.JobResponse, error) {
	job, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return transport.ToJobResponse(job), nil
}

// List returns jobs matching the filter.
func (s *Service) List(ctx context.Context, params repository.ListParams) ([]transport.JobResponse, error) {
	jobs, err := s.store.List(ctx, params)
	if err != nil {
		return nil, err
	}
	out := make([]transport.JobResponse, len(jobs))
	for i := range jobs {
		out[i] = *transport.ToJobResponse(&jobs[i])
	}
	return out, nil
}

// Update applies mutable field changes to a job. Status is not updated here;
// status changes go through UpdateStatus so the gate cannot be bypassed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateJobRequest) (*transport.JobResponse, error) {
	job, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(job)
	if err := s.store.Update(ctx, job); err != nil {
		return nil, err
	}
	return transport.ToJobResponse(job), nil
}

// ValidateTransition evaluates whether the job may move to the target stage.
// A missing job fails closed: allowed=false alongside the NotFound error.
func (s *Service) ValidateTransition(ctx context.Context, jobID uuid.UUID, target domain.Stage) (domain.TransitionCheck, error) {
	enriched, err := s.enricher.Enrich(ctx, jobID)
	if err != nil {
		return domain.TransitionCheck{Target: target, Allowed: false}, err
	}
	return s.registry.CheckTransition(enriched, target), nil
}

// Readiness evaluates every registered stage for the job, producing the
// "what blocks each stage" report.
func (s *Service) Readiness(ctx context.Context, jobID uuid.UUID) (*transport.ReadinessResponse, error) {
	enriched, err := s.enricher.Enrich(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &transport.ReadinessResponse{
		JobID:        jobID,
		Status:       string(enriched.Status),
		RulesVersion: domain.RulesVersion,
		Stages:       s.registry.Readiness(enriched),
	}, nil
}

// UpdateStatus moves a job to the target stage. The transition validator is
// a hard gate here: a blocked forward move returns the unmet prerequisite
// list as validation details and nothing is persisted.
func (s *Service) UpdateStatus(ctx context.Context, jobID uuid.UUID, target domain.Stage) (*transport.StatusChangeResponse, error) {
	enriched, err := s.enricher.Enrich(ctx, jobID)
	if err != nil {
		return nil, err
	}

	check := s.registry.CheckTransition(enriched, target)
	if !check.Allowed {
		return nil, apperr.Validation("stage transition blocked").WithDetails(check.Unmet)
	}

	old := enriched.Status
	if old == target {
		return &transport.StatusChangeResponse{JobID: jobID, OldStatus: string(old), NewStatus: string(target)}, nil
	}

	if err := s.store.UpdateStatus(ctx, jobID, string(old), string(target)); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobStatusChanged{
			BaseEvent:          events.NewBaseEvent(),
			JobID:              jobID,
			ContactID:          enriched.ContactID,
			PartnerID:          enriched.PartnerID,
			OldStatus:          string(old),
			NewStatus:          string(target),
			DeliveryType:       enriched.DeliveryType,
			QuotedValueCents:   enriched.QuotedValueCents,
			PartnerChargeType:  enriched.PartnerChargeType,
			PartnerChargeValue: enriched.PartnerChargeValue,
		})
	}

	return &transport.StatusChangeResponse{
		JobID:     jobID,
		OldStatus: string(old),
		NewStatus: string(target),
		Waived:    check.Waived,
	}, nil
}

// RespondQuote records the client's quote response on the job.
func (s *Service) RespondQuote(ctx context.Context, jobID uuid.UUID, response string) error {
	if response != domain.QuoteResponseAccepted && response != domain.QuoteResponseDeclined {
		return apperr.Validation("quote response must be accepted or declined")
	}

	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	job.QuoteResponse = &response
	if err := s.store.Update(ctx, job); err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobQuoteResponded{
			BaseEvent: events.NewBaseEvent(),
			JobID:     jobID,
			Response:  response,
		})
	}
	return nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
