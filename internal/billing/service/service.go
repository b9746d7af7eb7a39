package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/billing/repository"
	"ccc_backoffice/internal/billing/transport"
	"ccc_backoffice/internal/events"
	"ccc_backoffice/platform/apperr"
	"ccc_backoffice/platform/config"

	"github.com/google/uuid"
)

// MarkupSource resolves the client-facing markup percent for a job. Wired as
// an adapter over the jobs module so billing never reads the jobs tables.
type MarkupSource interface {
	JobMarkupPercent(ctx context.Context, jobID uuid.UUID) (*int64, error)
}

// docTransitions defines the legal status moves per document type.
var docTransitions = map[string]map[string][]string{
	"invoice": {
		"draft": {"sent"},
		"sent":  {"paid"},
	},
	"quote": {
		"draft": {"sent"},
		"sent":  {"accepted", "rejected"},
	},
}

func canTransition(docType, from, to string) bool {
	next, ok := docTransitions[docType][from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Service provides business logic for billing documents and pricing.
type Service struct {
	repo   *repository.Repository
	cfg    config.BillingConfig
	bus    events.Bus
	markup MarkupSource
}

// New creates a new billing service.
func New(repo *repository.Repository, cfg config.BillingConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// SetEventBus injects the event bus (set after construction to break circular deps).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// SetMarkupSource injects the job markup resolver.
func (s *Service) SetMarkupSource(src MarkupSource) {
	s.markup = src
}

// Calculate previews totals for a set of lines without persisting anything.
// With clientView set, the job's markup (falling back to the global default)
// is applied to the unit prices first.
func (s *Service) Calculate(ctx context.Context, req transport.CalculateRequest) (*Totals, error) {
	items := toLineInputs(req.Items)

	if req.ClientView {
		pct, err := s.resolveMarkup(ctx, req.JobID)
		if err != nil {
			return nil, err
		}
		items = ApplyClientMarkup(items, pct)
	}

	totals := ComputeTotals(items,
		DiscountInput{Type: req.DiscountType, Value: req.DiscountValue},
		TaxInput{Enabled: req.TaxEnabled, RateBps: req.TaxRateBps},
		DepositInput{Required: req.DepositRequired, Type: req.DepositType, Value: req.DepositValue},
	)
	return &totals, nil
}

func (s *Service) resolveMarkup(ctx context.Context, jobID *uuid.UUID) (int64, error) {
	if jobID != nil && s.markup != nil {
		pct, err := s.markup.JobMarkupPercent(ctx, *jobID)
		if err != nil {
			return 0, err
		}
		if pct != nil {
			return *pct, nil
		}
	}
	return s.cfg.GetClientMarkupPercent(), nil
}

// CreateDocument numbers, prices, and persists a document with its items in
// one transaction.
func (s *Service) CreateDocument(ctx context.Context, req transport.CreateDocumentRequest) (*transport.DocumentResponse, error) {
	number, err := s.repo.NextDocumentNumber(ctx, req.DocType)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(toLineInputs(req.Items),
		DiscountInput{Type: req.DiscountType, Value: req.DiscountValue},
		TaxInput{Enabled: req.TaxEnabled, RateBps: req.TaxRateBps},
		DepositInput{},
	)

	now := time.Now()
	doc := repository.Document{
		ID:                     uuid.New(),
		JobID:                  req.JobID,
		DocType:                req.DocType,
		DocumentNumber:         number,
		Status:                 "draft",
		DiscountType:           defaultString(req.DiscountType, "percentage"),
		DiscountValue:          req.DiscountValue,
		TaxEnabled:             req.TaxEnabled,
		TaxRateBps:             req.TaxRateBps,
		SubtotalCents:          totals.SubtotalCents,
		DiscountAmountCents:    totals.DiscountAmountCents,
		TaxAmountCents:         totals.TaxAmountCents,
		GrandTotalCents:        totals.GrandTotalCents,
		DepositCalculatedCents: totals.DepositCalculatedCents,
		ShowInPortal:           req.ShowInPortal,
		Notes:                  req.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	items := buildItems(doc.ID, req.JobID, req.Items)
	if err := s.repo.CreateWithItems(ctx, &doc, items); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.DocumentCreated{
			BaseEvent:       events.NewBaseEvent(),
			DocumentID:      doc.ID,
			JobID:           doc.JobID,
			DocType:         doc.DocType,
			DocumentNumber:  doc.DocumentNumber,
			GrandTotalCents: doc.GrandTotalCents,
		})
	}

	return transport.ToDocumentResponse(&doc, items), nil
}

// UpdateDocument recalculates and replaces a draft document's pricing and items.
func (s *Service) UpdateDocument(ctx context.Context, id uuid.UUID, req transport.UpdateDocumentRequest) (*transport.DocumentResponse, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != "draft" {
		return nil, apperr.Validation("only draft documents can be edited")
	}

	totals := ComputeTotals(toLineInputs(req.Items),
		DiscountInput{Type: req.DiscountType, Value: req.DiscountValue},
		TaxInput{Enabled: req.TaxEnabled, RateBps: req.TaxRateBps},
		DepositInput{},
	)

	doc.DiscountType = defaultString(req.DiscountType, "percentage")
	doc.DiscountValue = req.DiscountValue
	doc.TaxEnabled = req.TaxEnabled
	doc.TaxRateBps = req.TaxRateBps
	doc.SubtotalCents = totals.SubtotalCents
	doc.DiscountAmountCents = totals.DiscountAmountCents
	doc.TaxAmountCents = totals.TaxAmountCents
	doc.GrandTotalCents = totals.GrandTotalCents
	doc.DepositCalculatedCents = totals.DepositCalculatedCents
	doc.ShowInPortal = req.ShowInPortal
	doc.Notes = req.Notes

	items := buildItems(doc.ID, doc.JobID, req.Items)
	if err := s.repo.UpdateWithItems(ctx, doc, items); err != nil {
		return nil, err
	}

	return transport.ToDocumentResponse(doc, items), nil
}

// Get fetches a document with its line items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.DocumentResponse, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return transport.ToDocumentResponse(doc, items), nil
}

// ListByJob returns all documents attached to a job.
func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]transport.DocumentResponse, error) {
	docs, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return toResponses(docs), nil
}

// ListPortalVisible returns the documents a client may see: sent and flagged
// for the portal.
func (s *Service) ListPortalVisible(ctx context.Context, jobID uuid.UUID) ([]transport.DocumentResponse, error) {
	docs, err := s.repo.ListPortalVisible(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return toResponses(docs), nil
}

// UpdateStatus moves a document through its status machine.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*transport.DocumentResponse, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == status {
		return transport.ToDocumentResponse(doc, nil), nil
	}
	if !canTransition(doc.DocType, doc.Status, status) {
		return nil, apperr.Validation("invalid document status transition")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	oldStatus := doc.Status
	doc.Status = status

	if s.bus != nil {
		s.bus.Publish(ctx, events.DocumentStatusChanged{
			BaseEvent:  events.NewBaseEvent(),
			DocumentID: doc.ID,
			JobID:      doc.JobID,
			DocType:    doc.DocType,
			OldStatus:  oldStatus,
			NewStatus:  status,
		})
	}

	return transport.ToDocumentResponse(doc, nil), nil
}

func toResponses(docs []repository.Document) []transport.DocumentResponse {
	out := make([]transport.DocumentResponse, len(docs))
	for i := range docs {
		out[i] = *transport.ToDocumentResponse(&docs[i], nil)
	}
	return out
}

func toLineInputs(items []transport.LineItemRequest) []LineInput {
	out := make([]LineInput, len(items))
	for i, item := range items {
		out[i] = LineInput{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}
	return out
}

func buildItems(documentID, jobID uuid.UUID, items []transport.LineItemRequest) []repository.LineItem {
	out := make([]repository.LineItem, len(items))
	for i, item := range items {
		out[i] = repository.LineItem{
			ID:             uuid.New(),
			DocumentID:     documentID,
			JobID:          jobID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: LineTotalCents(item.Quantity, item.UnitPriceCents),
			SortOrder:      item.SortOrder,
		}
	}
	return out
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
