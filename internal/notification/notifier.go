// Package notification sends back-office email notices in response to
// domain events. The engine modules never send mail themselves.
package notification

import (
	"context"
	"time"

	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/notification/email"
	"ccc_backoffice/platform/config"
	"ccc_backoffice/platform/logger"
)

// Sender is the outbound mail interface the notifier depends on.
type Sender interface {
	SendJobPaid(ctx context.Context, toEmail, jobID string, amountCents int64) error
	SendCalloutFeeSettled(ctx context.Context, toEmail, calloutID string, feeCents int64) error
	SendCalloutFeeReminder(ctx context.Context, toEmail, calloutID string, feeCents int64, outstandingFor string) error
	SendProposalCreated(ctx context.Context, toEmail, jobID string, proposedStart time.Time) error
}

// Notifier subscribes to domain events and emails the ops inbox. Send
// failures are logged; notifications never block or fail domain operations.
type Notifier struct {
	sender Sender
	to     string
	log    *logger.Logger
}

// NewNotifier creates a notifier delivering to the configured ops address.
func NewNotifier(sender Sender, to string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, to: to, log: log}
}

// Subscribe registers the notifier on the event streams it cares about.
func (n *Notifier) Subscribe(bus events.Bus) {
	bus.Subscribe(events.JobStatusChanged{}.EventName(), events.HandlerFunc(n.handleJobStatusChanged))
	bus.Subscribe(events.CalloutFeeSettled{}.EventName(), events.HandlerFunc(n.handleCalloutFeeSettled))
	bus.Subscribe(events.CalloutFeeReminderDue{}.EventName(), events.HandlerFunc(n.handleCalloutFeeReminder))
	bus.Subscribe(events.ScheduleProposalCreated{}.EventName(), events.HandlerFunc(n.handleProposalCreated))
}

func (n *Notifier) handleJobStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.JobStatusChanged)
	if !ok || e.NewStatus != "paid" || e.OldStatus == "paid" {
		return nil
	}
	if err := n.sender.SendJobPaid(ctx, n.to, e.JobID.String(), e.QuotedValueCents); err != nil {
		n.log.Error("failed to send job paid notice", "error", err, "job_id", e.JobID)
	}
	return nil
}

func (n *Notifier) handleCalloutFeeSettled(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CalloutFeeSettled)
	if !ok {
		return nil
	}
	if err := n.sender.SendCalloutFeeSettled(ctx, n.to, e.CalloutID.String(), e.FeeAmountCents); err != nil {
		n.log.Error("failed to send callout fee notice", "error", err, "callout_id", e.CalloutID)
	}
	return nil
}

func (n *Notifier) handleCalloutFeeReminder(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CalloutFeeReminderDue)
	if !ok {
		return nil
	}
	if err := n.sender.SendCalloutFeeReminder(ctx, n.to, e.CalloutID.String(), e.FeeAmountCents, e.OutstandingFor); err != nil {
		n.log.Error("failed to send callout fee reminder", "error", err, "callout_id", e.CalloutID)
	}
	return nil
}

func (n *Notifier) handleProposalCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.ScheduleProposalCreated)
	if !ok {
		return nil
	}
	if err := n.sender.SendProposalCreated(ctx, n.to, e.JobID.String(), e.ProposedStart); err != nil {
		n.log.Error("failed to send proposal notice", "error", err, "job_id", e.JobID)
	}
	return nil
}

// Setup wires the notifier when mail is configured; with mail disabled it is
// a no-op and the rest of the application runs unaffected.
func Setup(cfg config.MailConfig, bus events.Bus, log *logger.Logger) *Notifier {
	if !cfg.GetMailEnabled() {
		log.Info("mail disabled; notifications off")
		return nil
	}
	to := cfg.GetNotifyToAddress()
	if to == "" {
		to = cfg.GetMailFromAddress()
	}
	notifier := NewNotifier(email.NewSMTPSender(cfg), to, log)
	notifier.Subscribe(bus)
	return notifier
}
