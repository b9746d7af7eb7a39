package domain

import "github.com/google/uuid"

// Delivery types for a job.
const (
	DeliveryInHouse = "in_house"
	DeliveryPartner = "partner"
	DeliveryHybrid  = "hybrid"
)

// Quote responses recorded on the job after the client replies.
const (
	QuoteResponseAccepted = "accepted"
	QuoteResponseDeclined = "declined"
)

// Value types shared by discount, deposit, partner charge and markup config.
const (
	ValueTypePercentage = "percentage"
	ValueTypeFixed      = "fixed"
)

// EnrichedJob is the flat read-model the transition validator consumes:
// the raw job row combined with boolean/numeric signals derived from
// related records. Building one is the enricher's job; evaluating one is
// pure and needs no storage access.
type EnrichedJob struct {
	JobID        uuid.UUID
	ContactID    uuid.UUID
	PartnerID    *uuid.UUID
	Status       Stage
	DeliveryType string
	QuoteType    string

	QuotedValueCents int64
	QuoteResponse    string

	DepositRequired bool
	DepositType     string
	DepositValue    int64
	DepositReceived bool

	DiscountType  string
	DiscountValue int64

	TaxEnabled bool
	TaxRateBps int

	PartnerChargeType  string
	PartnerChargeValue int64
	CCCMarginCents     int64

	// Derived signals from related records.
	HasQuoteItems      bool
	HasSurveyScheduled bool
	HasWorkScheduled   bool
	HasInvoice         bool
	PaidAmountCents    int64
	IsPaidInFull       bool
}

// Field returns the named prerequisite field from the enriched record.
// Prerequisite descriptors reference fields by these wire-style names so the
// unmet list is directly displayable by the caller.
func (e EnrichedJob) Field(name string) (any, bool) {
	switch name {
	case "partnerId":
		if e.PartnerID == nil {
			return nil, true
		}
		return *e.PartnerID, true
	case "status":
		return string(e.Status), true
	case "deliveryType":
		return e.DeliveryType, true
	case "quoteType":
		return e.QuoteType, true
	case "quotedValue":
		return e.QuotedValueCents, true
	case "quoteResponse":
		return e.QuoteResponse, true
	case "depositRequired":
		return e.DepositRequired, true
	case "depositReceived":
		return e.DepositReceived, true
	case "hasQuoteItems":
		return e.HasQuoteItems, true
	case "hasSurveyScheduled":
		return e.HasSurveyScheduled, true
	case "hasWorkScheduled":
		return e.HasWorkScheduled, true
	case "hasInvoice":
		return e.HasInvoice, true
	case "paidAmount":
		return e.PaidAmountCents, true
	case "isPaidInFull":
		return e.IsPaidInFull, true
	default:
		return nil, false
	}
}
