package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/partners/repository"
	"ccc_backoffice/internal/partners/transport"
	"ccc_backoffice/platform/phone"

	"github.com/google/uuid"
)

// Service provides business logic for partners and the commission engine.
type Service struct {
	repo *repository.Repository
}

// New creates a new partners service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a partner, normalizing the contact phone to E.164.
func (s *Service) Create(ctx context.Context, req transport.CreatePartnerRequest) (*transport.PartnerResponse, error) {
	now := time.Now()
	p := repository.Partner{
		ID:                 uuid.New(),
		Name:               req.Name,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       phone.NormalizeE164(req.ContactPhone),
		DefaultChargeType:  defaultString(req.DefaultChargeType, "percentage"),
		DefaultChargeValue: req.DefaultChargeValue,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return transport.ToPartnerResponse(&p), nil
}

// Get fetches a single partner.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.PartnerResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return transport.ToPartnerResponse(p), nil
}

// List returns partners.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]transport.PartnerResponse, error) {
	partners, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]transport.PartnerResponse, len(partners))
	for i := range partners {
		out[i] = *transport.ToPartnerResponse(&partners[i])
	}
	return out, nil
}

// Update applies partial changes to a partner.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdatePartnerRequest) (*transport.PartnerResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ContactEmail != nil {
		p.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		p.ContactPhone = phone.NormalizeE164(*req.ContactPhone)
	}
	if req.DefaultChargeType != nil {
		p.DefaultChargeType = *req.DefaultChargeType
	}
	if req.DefaultChargeValue != nil {
		p.DefaultChargeValue = *req.DefaultChargeValue
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return transport.ToPartnerResponse(p), nil
}

// PreviewSplit runs the commission engine without persisting anything.
func (s *Service) PreviewSplit(req transport.SplitPreviewRequest) Margin {
	return SplitMargin(req.GrossCents, req.ChargeType, req.ChargeValue)
}

// ChargeFor returns the charge config to use for a job delivered by this
// partner: the job override when present, otherwise the partner's default.
func (s *Service) ChargeFor(ctx context.Context, partnerID uuid.UUID, overrideType string, overrideValue int64) (string, int64, error) {
	if overrideType != "" && overrideValue > 0 {
		return overrideType, overrideValue, nil
	}
	p, err := s.repo.GetByID(ctx, partnerID)
	if err != nil {
		return "", 0, err
	}
	return p.DefaultChargeType, p.DefaultChargeValue, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
