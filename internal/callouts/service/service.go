package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/callouts/repository"
	"ccc_backoffice/internal/callouts/transport"
	"ccc_backoffice/platform/apperr"

	"github.com/google/uuid"
)

// FeeSettler settles a callout's outstanding fee. Implemented by the finance
// recorder; wired after construction so callouts never import finance.
type FeeSettler interface {
	SettleCalloutFee(ctx context.Context, calloutID uuid.UUID) error
}

// Service provides business logic for emergency callouts.
type Service struct {
	repo    *repository.Repository
	settler FeeSettler
}

// New creates a new callouts service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetFeeSettler injects the finance recorder's settlement operation.
func (s *Service) SetFeeSettler(settler FeeSettler) {
	s.settler = settler
}

// Create records a callout; the fee the partner owes is fixed at creation.
func (s *Service) Create(ctx context.Context, req transport.CreateCalloutRequest) (*transport.CalloutResponse, error) {
	now := time.Now()
	c := repository.Callout{
		ID:                    uuid.New(),
		JobID:                 req.JobID,
		AssignedPartnerID:     req.AssignedPartnerID,
		Description:           req.Description,
		TotalCollectedCents:   req.TotalCollectedCents,
		CalloutFeePercent:     req.CalloutFeePercent,
		CalloutFeeAmountCents: ComputeFeeCents(req.TotalCollectedCents, req.CalloutFeePercent),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return transport.ToCalloutResponse(&c), nil
}

// Get fetches a single callout.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.CalloutResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return transport.ToCalloutResponse(c), nil
}

// List returns callouts, optionally only those with unpaid fees.
func (s *Service) List(ctx context.Context, outstandingOnly bool) ([]transport.CalloutResponse, error) {
	callouts, err := s.repo.List(ctx, outstandingOnly)
	if err != nil {
		return nil, err
	}
	out := make([]transport.CalloutResponse, len(callouts))
	for i := range callouts {
		out[i] = *transport.ToCalloutResponse(&callouts[i])
	}
	return out, nil
}

// SettleFee settles the callout's fee through the finance recorder and
// returns the updated record.
func (s *Service) SettleFee(ctx context.Context, id uuid.UUID) (*transport.CalloutResponse, error) {
	if s.settler == nil {
		return nil, apperr.Internal("fee settlement not configured")
	}
	if err := s.settler.SettleCalloutFee(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
