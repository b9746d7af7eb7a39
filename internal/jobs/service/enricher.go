package service

import (
	"context"

	"ccc_backoffice/internal/jobs/domain"
	"ccc_backoffice/internal/jobs/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// EnrichmentStore is the narrow read interface the enricher needs: the job
// row plus the aggregate signals derived from related tables.
type EnrichmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Job, error)
	CountQuoteItems(ctx context.Context, jobID uuid.UUID) (int, error)
	HasSurveyScheduled(ctx context.Context, jobID uuid.UUID) (bool, error)
	HasWorkScheduled(ctx context.Context, jobID uuid.UUID) (bool, error)
	HasSentInvoice(ctx context.Context, jobID uuid.UUID) (bool, error)
	PaidAmountCents(ctx context.Context, jobID uuid.UUID) (int64, error)
}

// Enricher assembles the flat read-model the transition validator consumes.
// It is the only component that knows which tables the derived signals come
// from; the validator stays pure.
type Enricher struct {
	store EnrichmentStore
}

// NewEnricher creates a new job enricher.
func NewEnricher(store EnrichmentStore) *Enricher {
	return &Enricher{store: store}
}

// Enrich loads the job row and derives the related-record signals.
// A missing job returns the repository's NotFound error; callers fail closed.
func (e *Enricher) Enrich(ctx context.Context, jobID uuid.UUID) (domain.EnrichedJob, error) {
	job, err := e.store.GetByID(ctx, jobID)
	if err != nil {
		return domain.EnrichedJob{}, err
	}

	var (
		itemCount       int
		surveyScheduled bool
		workScheduled   bool
		invoiceSent     bool
		paidCents       int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		itemCount, err = e.store.CountQuoteItems(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		surveyScheduled, err = e.store.HasSurveyScheduled(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		workScheduled, err = e.store.HasWorkScheduled(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		invoiceSent, err = e.store.HasSentInvoice(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		paidCents, err = e.store.PaidAmountCents(gctx, jobID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.EnrichedJob{}, err
	}

	enriched := domain.EnrichedJob{
		JobID:              job.ID,
		ContactID:          job.ContactID,
		PartnerID:          job.PartnerID,
		Status:             domain.Stage(job.Status),
		DeliveryType:       job.DeliveryType,
		QuoteType:          job.QuoteType,
		QuotedValueCents:   job.QuotedValueCents,
		DepositRequired:    job.DepositRequired,
		DepositType:        job.DepositType,
		DepositValue:       job.DepositValue,
		DepositReceived:    job.DepositReceived,
		DiscountType:       job.DiscountType,
		DiscountValue:      job.DiscountValue,
		TaxEnabled:         job.TaxEnabled,
		TaxRateBps:         job.TaxRateBps,
		PartnerChargeType:  job.PartnerChargeType,
		PartnerChargeValue: job.PartnerChargeValue,
		CCCMarginCents:     job.CCCMarginCents,
		HasQuoteItems:      itemCount > 0,
		HasSurveyScheduled: surveyScheduled,
		HasWorkScheduled:   workScheduled,
		HasInvoice:         invoiceSent,
		PaidAmountCents:    paidCents,
	}
	if job.QuoteResponse != nil {
		enriched.QuoteResponse = *job.QuoteResponse
	}
	enriched.IsPaidInFull = job.QuotedValueCents > 0 && paidCents >= job.QuotedValueCents

	return enriched, nil
}
