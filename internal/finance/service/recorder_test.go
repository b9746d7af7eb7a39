package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/finance/repository"
	"ccc_backoffice/platform/apperr"
	"ccc_backoffice/platform/logger"

	"github.com/google/uuid"
)

type fakeLedger struct {
	mu        sync.Mutex
	inserted  []repository.Transaction
	insertErr error
	hasEntry  bool
	settled   *repository.SettledCallout
	settleErr error
}

func (f *fakeLedger) Insert(_ context.Context, t *repository.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *t)
	return nil
}

func (f *fakeLedger) ExistsForJobPayment(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.hasEntry, nil
}

func (f *fakeLedger) SettleCalloutFee(_ context.Context, _ uuid.UUID) (*repository.SettledCallout, error) {
	if f.settleErr != nil {
		return nil, f.settleErr
	}
	return f.settled, nil
}

func paidEvent(delivery string, quoted int64) events.JobStatusChanged {
	return events.JobStatusChanged{
		BaseEvent:        events.NewBaseEvent(),
		JobID:            uuid.New(),
		ContactID:        uuid.New(),
		OldStatus:        "invoiced",
		NewStatus:        "paid",
		DeliveryType:     delivery,
		QuotedValueCents: quoted,
	}
}

func TestRecorder_JobPaidWritesIncome(t *testing.T) {
	store := &fakeLedger{}
	rec := NewRecorder(store, logger.New("test"))

	e := paidEvent("in_house", 50000)
	if err := rec.handleJobStatusChanged(context.Background(), e); err != nil {
		t.Fatalf("handleJobStatusChanged returned error: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d entries, want 1", len(store.inserted))
	}
	entry := store.inserted[0]
	if entry.Type != "income" || entry.SourceType != "job_payment" {
		t.Errorf("entry = %s/%s, want income/job_payment", entry.Type, entry.SourceType)
	}
	if entry.GrossAmountCents != 50000 || entry.ProfitAmountCents != 50000 {
		t.Errorf("gross/profit = %d/%d, want 50000/50000", entry.GrossAmountCents, entry.ProfitAmountCents)
	}
	if entry.PartnerCostCents != 0 {
		t.Errorf("PartnerCostCents = %d, want 0 for in-house delivery", entry.PartnerCostCents)
	}
}

func TestRecorder_PartnerDeliverySplitsMargin(t *testing.T) {
	store := &fakeLedger{}
	rec := NewRecorder(store, logger.New("test"))

	e := paidEvent("partner", 100000)
	e.PartnerChargeType = "percentage"
	e.PartnerChargeValue = 20

	if err := rec.handleJobStatusChanged(context.Background(), e); err != nil {
		t.Fatalf("handleJobStatusChanged returned error: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d entries, want 1", len(store.inserted))
	}
	entry := store.inserted[0]
	if entry.ProfitAmountCents != 20000 {
		t.Errorf("ProfitAmountCents = %d, want 20000", entry.ProfitAmountCents)
	}
	if entry.PartnerCostCents != 80000 {
		t.Errorf("PartnerCostCents = %d, want 80000", entry.PartnerCostCents)
	}
	if entry.GrossAmountCents != 100000 {
		t.Errorf("GrossAmountCents = %d, want 100000", entry.GrossAmountCents)
	}
}

type fakeMarginWriter struct {
	jobID  uuid.UUID
	margin int64
	calls  int
}

func (f *fakeMarginWriter) SetCCCMargin(_ context.Context, id uuid.UUID, marginCents int64) error {
	f.jobID = id
	f.margin = marginCents
	f.calls++
	return nil
}

func TestRecorder_StoresMarginOnJobHeader(t *testing.T) {
	store := &fakeLedger{}
	margins := &fakeMarginWriter{}
	rec := NewRecorder(store, logger.New("test"))
	rec.SetMarginWriter(margins)

	e := paidEvent("partner", 100000)
	e.PartnerChargeType = "percentage"
	e.PartnerChargeValue = 20

	if err := rec.handleJobStatusChanged(context.Background(), e); err != nil {
		t.Fatalf("handleJobStatusChanged returned error: %v", err)
	}

	if margins.calls != 1 {
		t.Fatalf("SetCCCMargin called %d times, want 1", margins.calls)
	}
	if margins.jobID != e.JobID {
		t.Errorf("margin stored on job %s, want %s", margins.jobID, e.JobID)
	}
	if margins.margin != 20000 {
		t.Errorf("stored margin = %d, want 20000", margins.margin)
	}
}

func TestRecorder_GuardsSkipNonPaidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		old    string
		new    string
		quoted int64
	}{
		{"not reaching paid", "invoiced", "complete", 50000},
		{"already paid", "paid", "paid", 50000},
		{"no quoted value", "invoiced", "paid", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLedger{}
			rec := NewRecorder(store, logger.New("test"))

			e := paidEvent("in_house", tt.quoted)
			e.OldStatus = tt.old
			e.NewStatus = tt.new

			if err := rec.handleJobStatusChanged(context.Background(), e); err != nil {
				t.Fatalf("handleJobStatusChanged returned error: %v", err)
			}
			if len(store.inserted) != 0 {
				t.Errorf("inserted %d entries, want 0", len(store.inserted))
			}
		})
	}
}

func TestRecorder_SkipsWhenEntryExists(t *testing.T) {
	store := &fakeLedger{hasEntry: true}
	rec := NewRecorder(store, logger.New("test"))

	if err := rec.handleJobStatusChanged(context.Background(), paidEvent("in_house", 50000)); err != nil {
		t.Fatalf("handleJobStatusChanged returned error: %v", err)
	}
	if len(store.inserted) != 0 {
		t.Errorf("inserted %d entries, want 0 when a job payment entry exists", len(store.inserted))
	}
}

func TestRecorder_WriteFailureDoesNotPropagate(t *testing.T) {
	store := &fakeLedger{insertErr: errors.New("connection reset")}
	rec := NewRecorder(store, logger.New("test"))

	// The status change is already committed; the handler must swallow the
	// write failure instead of failing the transition.
	if err := rec.handleJobStatusChanged(context.Background(), paidEvent("in_house", 50000)); err != nil {
		t.Fatalf("handleJobStatusChanged returned error: %v", err)
	}
}

func TestRecorder_SettleCalloutFeePublishesEvent(t *testing.T) {
	partnerID := uuid.New()
	store := &fakeLedger{settled: &repository.SettledCallout{
		CalloutID:           uuid.New(),
		PartnerID:           partnerID,
		TotalCollectedCents: 30000,
		FeeAmountCents:      6000,
	}}
	rec := NewRecorder(store, logger.New("test"))

	bus := events.NewInMemoryBus(logger.New("test"))
	var mu sync.Mutex
	var captured []events.CalloutFeeSettled
	bus.Subscribe(events.CalloutFeeSettled{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		captured = append(captured, e.(events.CalloutFeeSettled))
		return nil
	}))
	rec.SetEventBus(bus)

	if err := rec.SettleCalloutFee(context.Background(), store.settled.CalloutID); err != nil {
		t.Fatalf("SettleCalloutFee returned error: %v", err)
	}
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(captured) != 1 {
		t.Fatalf("captured %d events, want 1", len(captured))
	}
	if captured[0].FeeAmountCents != 6000 || captured[0].TotalCollectedCents != 30000 {
		t.Errorf("event amounts = %d/%d, want 6000/30000",
			captured[0].FeeAmountCents, captured[0].TotalCollectedCents)
	}
	if captured[0].PartnerID != partnerID {
		t.Errorf("event partner = %s, want %s", captured[0].PartnerID, partnerID)
	}
}

func TestRecorder_SettleConflictPropagatesWithoutEvent(t *testing.T) {
	store := &fakeLedger{settleErr: apperr.Conflict("callout fee already settled")}
	rec := NewRecorder(store, logger.New("test"))

	bus := events.NewInMemoryBus(logger.New("test"))
	published := false
	bus.Subscribe(events.CalloutFeeSettled{}.EventName(), events.HandlerFunc(func(_ context.Context, _ events.Event) error {
		published = true
		return nil
	}))
	rec.SetEventBus(bus)

	err := rec.SettleCalloutFee(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Errorf("error kind = %v, want conflict", apperr.GetKind(err))
	}
	bus.Wait()
	if published {
		t.Error("settlement event published despite conflict")
	}
}
