package service

import (
	"context"
	"time"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/finance/repository"
	partners "ccc_backoffice/internal/partners/service"
	"ccc_backoffice/platform/logger"

	"github.com/google/uuid"
)

// LedgerStore is the narrow persistence interface the recorder writes through.
type LedgerStore interface {
	Insert(ctx context.Context, t *repository.Transaction) error
	ExistsForJobPayment(ctx context.Context, jobID uuid.UUID) (bool, error)
	SettleCalloutFee(ctx context.Context, calloutID uuid.UUID) (*repository.SettledCallout, error)
}

// MarginWriter stores the derived margin back on the job header so list
// views do not recompute it. Implemented by the jobs repository.
type MarginWriter interface {
	SetCCCMargin(ctx context.Context, id uuid.UUID, marginCents int64) error
}

// Recorder writes ledger entries on exactly two triggers: a job reaching the
// paid stage, and an emergency callout fee being settled.
type Recorder struct {
	store   LedgerStore
	margins MarginWriter
	log     *logger.Logger
	bus     events.Bus
}

// NewRecorder creates a new financial transaction recorder.
func NewRecorder(store LedgerStore, log *logger.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// SetEventBus injects the event bus used to announce settlements.
func (r *Recorder) SetEventBus(bus events.Bus) {
	r.bus = bus
}

// SetMarginWriter injects the job margin write-back (optional).
func (r *Recorder) SetMarginWriter(margins MarginWriter) {
	r.margins = margins
}

// Subscribe registers the recorder on the job status stream.
func (r *Recorder) Subscribe(bus events.Bus) {
	bus.Subscribe(events.JobStatusChanged{}.EventName(), events.HandlerFunc(r.handleJobStatusChanged))
}

// handleJobStatusChanged records income when a job first reaches paid. The
// status change has already been persisted, so a ledger write failure is
// logged and swallowed rather than failing the transition.
func (r *Recorder) handleJobStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.JobStatusChanged)
	if !ok {
		return nil
	}
	if e.OldStatus == "paid" || e.NewStatus != "paid" || e.QuotedValueCents <= 0 {
		return nil
	}

	if err := r.recordJobPayment(ctx, e); err != nil {
		r.log.LedgerWriteFailed("job_paid", e.JobID.String(), err)
	}
	return nil
}

func (r *Recorder) recordJobPayment(ctx context.Context, e events.JobStatusChanged) error {
	exists, err := r.store.ExistsForJobPayment(ctx, e.JobID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	gross := e.QuotedValueCents
	profit := gross
	var partnerCost int64
	if e.DeliveryType == "partner" {
		margin := partners.SplitMargin(gross, e.PartnerChargeType, e.PartnerChargeValue)
		profit = margin.CCCMarginCents
		partnerCost = margin.PartnerEarningsCents
	}

	if r.margins != nil {
		if err := r.margins.SetCCCMargin(ctx, e.JobID, profit); err != nil {
			r.log.Warn("failed to store job margin", "error", err, "job_id", e.JobID)
		}
	}

	jobID := e.JobID
	return r.store.Insert(ctx, &repository.Transaction{
		ID:                uuid.New(),
		JobID:             &jobID,
		PartnerID:         e.PartnerID,
		Type:              "income",
		AmountCents:       gross,
		GrossAmountCents:  gross,
		ProfitAmountCents: profit,
		PartnerCostCents:  partnerCost,
		SourceType:        "job_payment",
		Description:       "job payment received",
		CreatedAt:         time.Now(),
	})
}

// SettleCalloutFee settles the fee a partner owes on a callout. The store
// performs the flag flip and the ledger insert atomically; a repeat attempt
// surfaces the store's conflict unchanged. The settled event is published
// only after the commit.
func (r *Recorder) SettleCalloutFee(ctx context.Context, calloutID uuid.UUID) error {
	settled, err := r.store.SettleCalloutFee(ctx, calloutID)
	if err != nil {
		return err
	}

	if r.bus != nil {
		r.bus.Publish(ctx, events.CalloutFeeSettled{
			BaseEvent:           events.NewBaseEvent(),
			CalloutID:           settled.CalloutID,
			JobID:               settled.JobID,
			PartnerID:           settled.PartnerID,
			TotalCollectedCents: settled.TotalCollectedCents,
			FeeAmountCents:      settled.FeeAmountCents,
		})
	}
	return nil
}
