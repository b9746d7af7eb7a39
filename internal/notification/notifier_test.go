package notification

import (
	"context"
	"testing"
	"time"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/platform/logger"

	"github.com/google/uuid"
)

type fakeSender struct {
	jobPaid   int
	feeNotice int
	reminders int
	proposals int
}

func (f *fakeSender) SendJobPaid(context.Context, string, string, int64) error {
	f.jobPaid++
	return nil
}

func (f *fakeSender) SendCalloutFeeSettled(context.Context, string, string, int64) error {
	f.feeNotice++
	return nil
}

func (f *fakeSender) SendCalloutFeeReminder(context.Context, string, string, int64, string) error {
	f.reminders++
	return nil
}

func (f *fakeSender) SendProposalCreated(context.Context, string, string, time.Time) error {
	f.proposals++
	return nil
}

func TestNotifier_JobPaidOnly(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "ops@example.com", logger.New("test"))

	ctx := context.Background()
	_ = n.handleJobStatusChanged(ctx, events.JobStatusChanged{
		JobID: uuid.New(), OldStatus: "invoiced", NewStatus: "paid", QuotedValueCents: 50000,
	})
	_ = n.handleJobStatusChanged(ctx, events.JobStatusChanged{
		JobID: uuid.New(), OldStatus: "quote_sent", NewStatus: "quote_accepted",
	})
	_ = n.handleJobStatusChanged(ctx, events.JobStatusChanged{
		JobID: uuid.New(), OldStatus: "paid", NewStatus: "paid",
	})

	if sender.jobPaid != 1 {
		t.Errorf("SendJobPaid called %d times, want 1", sender.jobPaid)
	}
}

func TestNotifier_CalloutAndProposalNotices(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "ops@example.com", logger.New("test"))

	ctx := context.Background()
	_ = n.handleCalloutFeeSettled(ctx, events.CalloutFeeSettled{
		CalloutID: uuid.New(), PartnerID: uuid.New(), FeeAmountCents: 6000,
	})
	_ = n.handleCalloutFeeReminder(ctx, events.CalloutFeeReminderDue{
		CalloutID: uuid.New(), PartnerID: uuid.New(), FeeAmountCents: 6000, OutstandingFor: "96h0m0s",
	})
	_ = n.handleProposalCreated(ctx, events.ScheduleProposalCreated{
		ProposalID: uuid.New(), JobID: uuid.New(), ProposedStart: time.Now().Add(48 * time.Hour),
	})

	if sender.feeNotice != 1 {
		t.Errorf("SendCalloutFeeSettled called %d times, want 1", sender.feeNotice)
	}
	if sender.reminders != 1 {
		t.Errorf("SendCalloutFeeReminder called %d times, want 1", sender.reminders)
	}
	if sender.proposals != 1 {
		t.Errorf("SendProposalCreated called %d times, want 1", sender.proposals)
	}
}
