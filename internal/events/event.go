// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"ccc_backoffice/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Job Domain Events
// =============================================================================

// JobStatusChanged is published after a job's pipeline status has been
// persisted. The financial transaction recorder and the notification module
// subscribe to it; the old/new pair lets subscribers detect the paid
// transition without re-reading the job.
type JobStatusChanged struct {
	BaseEvent
	JobID              uuid.UUID  `json:"jobId"`
	ContactID          uuid.UUID  `json:"contactId"`
	PartnerID          *uuid.UUID `json:"partnerId,omitempty"`
	OldStatus          string     `json:"oldStatus"`
	NewStatus          string     `json:"newStatus"`
	DeliveryType       string     `json:"deliveryType"`
	QuotedValueCents   int64      `json:"quotedValueCents"`
	PartnerChargeType  string     `json:"partnerChargeType,omitempty"`
	PartnerChargeValue int64      `json:"partnerChargeValue,omitempty"`
}

func (e JobStatusChanged) EventName() string { return "jobs.status.changed" }

// JobQuoteResponded is published when a client accepts or declines a quote.
type JobQuoteResponded struct {
	BaseEvent
	JobID    uuid.UUID `json:"jobId"`
	Response string    `json:"response"` // "accepted" or "declined"
}

func (e JobQuoteResponded) EventName() string { return "jobs.quote.responded" }

// =============================================================================
// Billing Domain Events
// =============================================================================

// DocumentCreated is published when a quote or invoice document is created
// with its line items.
type DocumentCreated struct {
	BaseEvent
	DocumentID      uuid.UUID `json:"documentId"`
	JobID           uuid.UUID `json:"jobId"`
	DocType         string    `json:"docType"` // "quote" or "invoice"
	DocumentNumber  string    `json:"documentNumber"`
	GrandTotalCents int64     `json:"grandTotalCents"`
}

func (e DocumentCreated) EventName() string { return "billing.document.created" }

// DocumentStatusChanged is published when a document moves between
// draft/sent/paid states.
type DocumentStatusChanged struct {
	BaseEvent
	DocumentID uuid.UUID `json:"documentId"`
	JobID      uuid.UUID `json:"jobId"`
	DocType    string    `json:"docType"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
}

func (e DocumentStatusChanged) EventName() string { return "billing.document.status_changed" }

// =============================================================================
// Survey Domain Events
// =============================================================================

// SurveyStatusChanged is published when a survey's status machine advances.
type SurveyStatusChanged struct {
	BaseEvent
	SurveyID  uuid.UUID `json:"surveyId"`
	JobID     uuid.UUID `json:"jobId"`
	PartnerID uuid.UUID `json:"partnerId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e SurveyStatusChanged) EventName() string { return "surveys.status.changed" }

// SurveyBookingChanged is published when the date negotiation between
// partner and client advances.
type SurveyBookingChanged struct {
	BaseEvent
	SurveyID         uuid.UUID `json:"surveyId"`
	JobID            uuid.UUID `json:"jobId"`
	OldBookingStatus string    `json:"oldBookingStatus"`
	NewBookingStatus string    `json:"newBookingStatus"`
}

func (e SurveyBookingChanged) EventName() string { return "surveys.booking.changed" }

// =============================================================================
// Scheduling Domain Events
// =============================================================================

// ScheduleProposalCreated is published when a new work-start proposal is
// created (all prior active proposals for the job are archived first).
type ScheduleProposalCreated struct {
	BaseEvent
	ProposalID    uuid.UUID `json:"proposalId"`
	JobID         uuid.UUID `json:"jobId"`
	ProposedStart time.Time `json:"proposedStart"`
}

func (e ScheduleProposalCreated) EventName() string { return "scheduling.proposal.created" }

// ScheduleProposalConfirmed is published when a proposal is confirmed.
type ScheduleProposalConfirmed struct {
	BaseEvent
	ProposalID    uuid.UUID `json:"proposalId"`
	JobID         uuid.UUID `json:"jobId"`
	ProposedStart time.Time `json:"proposedStart"`
}

func (e ScheduleProposalConfirmed) EventName() string { return "scheduling.proposal.confirmed" }

// =============================================================================
// Callout Domain Events
// =============================================================================

// CalloutFeeSettled is published after an emergency callout fee has been
// settled and the ledger entry committed.
type CalloutFeeSettled struct {
	BaseEvent
	CalloutID           uuid.UUID  `json:"calloutId"`
	JobID               *uuid.UUID `json:"jobId,omitempty"`
	PartnerID           uuid.UUID  `json:"partnerId"`
	TotalCollectedCents int64      `json:"totalCollectedCents"`
	FeeAmountCents      int64      `json:"feeAmountCents"`
}

func (e CalloutFeeSettled) EventName() string { return "callouts.fee.settled" }

// CalloutFeeReminderDue is published by the background worker for each
// callout whose fee is still outstanding past the reminder window.
type CalloutFeeReminderDue struct {
	BaseEvent
	CalloutID      uuid.UUID `json:"calloutId"`
	PartnerID      uuid.UUID `json:"partnerId"`
	FeeAmountCents int64     `json:"feeAmountCents"`
	OutstandingFor string    `json:"outstandingFor"`
}

func (e CalloutFeeReminderDue) EventName() string { return "callouts.fee.reminder_due" }
