package transport

import (
	"time"

	"ccc_backoffice/internal/jobs/domain"
	"ccc_backoffice/internal/jobs/repository"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateJobRequest is the request body for creating a new job.
type CreateJobRequest struct {
	ContactID          uuid.UUID  `json:"contactId" validate:"required"`
	PartnerID          *uuid.UUID `json:"partnerId"`
	DeliveryType       string     `json:"deliveryType" validate:"omitempty,oneof=in_house partner hybrid"`
	QuoteType          string     `json:"quoteType" validate:"omitempty,max=100"`
	QuotedValueCents   int64      `json:"quotedValueCents" validate:"min=0"`
	DepositRequired    bool       `json:"depositRequired"`
	DepositType        string     `json:"depositType" validate:"omitempty,oneof=percentage fixed"`
	DepositValue       int64      `json:"depositValue" validate:"min=0"`
	DiscountType       string     `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue      int64      `json:"discountValue" validate:"min=0"`
	TaxEnabled         bool       `json:"taxEnabled"`
	TaxRateBps         int        `json:"taxRateBps" validate:"min=0,max=10000"`
	PartnerChargeType  string     `json:"partnerChargeType" validate:"omitempty,oneof=percentage fixed"`
	PartnerChargeValue int64      `json:"partnerChargeValue" validate:"min=0"`
	MarkupPercent      *int64     `json:"markupPercent" validate:"omitempty,min=0"`
}

// UpdateJobRequest is a partial update of mutable job fields.
// Status deliberately has no field here; status changes go through the gated
// status endpoint.
type UpdateJobRequest struct {
	PartnerID          *uuid.UUID `json:"partnerId"`
	DeliveryType       *string    `json:"deliveryType" validate:"omitempty,oneof=in_house partner hybrid"`
	QuoteType          *string    `json:"quoteType" validate:"omitempty,max=100"`
	QuotedValueCents   *int64     `json:"quotedValueCents" validate:"omitempty,min=0"`
	DepositRequired    *bool      `json:"depositRequired"`
	DepositType        *string    `json:"depositType" validate:"omitempty,oneof=percentage fixed"`
	DepositValue       *int64     `json:"depositValue" validate:"omitempty,min=0"`
	DepositReceived    *bool      `json:"depositReceived"`
	DiscountType       *string    `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue      *int64     `json:"discountValue" validate:"omitempty,min=0"`
	TaxEnabled         *bool      `json:"taxEnabled"`
	TaxRateBps         *int       `json:"taxRateBps" validate:"omitempty,min=0,max=10000"`
	PartnerChargeType  *string    `json:"partnerChargeType" validate:"omitempty,oneof=percentage fixed"`
	PartnerChargeValue *int64     `json:"partnerChargeValue" validate:"omitempty,min=0"`
	MarkupPercent      *int64     `json:"markupPercent" validate:"omitempty,min=0"`
}

// ApplyTo copies the set fields onto the job row.
func (r UpdateJobRequest) ApplyTo(job *repository.Job) {
	if r.PartnerID != nil {
		job.PartnerID = r.PartnerID
	}
	if r.DeliveryType != nil {
		job.DeliveryType = *r.DeliveryType
	}
	if r.QuoteType != nil {
		job.QuoteType = *r.QuoteType
	}
	if r.QuotedValueCents != nil {
		job.QuotedValueCents = *r.QuotedValueCents
	}
	if r.DepositRequired != nil {
		job.DepositRequired = *r.DepositRequired
	}
	if r.DepositType != nil {
		job.DepositType = *r.DepositType
	}
	if r.DepositValue != nil {
		job.DepositValue = *r.DepositValue
	}
	if r.DepositReceived != nil {
		job.DepositReceived = *r.DepositReceived
	}
	if r.DiscountType != nil {
		job.DiscountType = *r.DiscountType
	}
	if r.DiscountValue != nil {
		job.DiscountValue = *r.DiscountValue
	}
	if r.TaxEnabled != nil {
		job.TaxEnabled = *r.TaxEnabled
	}
	if r.TaxRateBps != nil {
		job.TaxRateBps = *r.TaxRateBps
	}
	if r.PartnerChargeType != nil {
		job.PartnerChargeType = *r.PartnerChargeType
	}
	if r.PartnerChargeValue != nil {
		job.PartnerChargeValue = *r.PartnerChargeValue
	}
	if r.MarkupPercent != nil {
		job.MarkupPercent = r.MarkupPercent
	}
}

// UpdateStatusRequest moves a job to a target stage.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

// ValidateTransitionRequest asks whether a move to a target stage would be allowed.
type ValidateTransitionRequest struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

// QuoteResponseRequest records the client's reply to a sent quote.
type QuoteResponseRequest struct {
	Response string `json:"response" validate:"required,oneof=accepted declined"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// JobResponse is the API representation of a job.
type JobResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ContactID          uuid.UUID  `json:"contactId"`
	PartnerID          *uuid.UUID `json:"partnerId,omitempty"`
	Status             string     `json:"status"`
	DeliveryType       string     `json:"deliveryType"`
	QuoteType          string     `json:"quoteType,omitempty"`
	QuotedValueCents   int64      `json:"quotedValueCents"`
	QuoteResponse      *string    `json:"quoteResponse,omitempty"`
	DepositRequired    bool       `json:"depositRequired"`
	DepositType        string     `json:"depositType"`
	DepositValue       int64      `json:"depositValue"`
	DepositReceived    bool       `json:"depositReceived"`
	DiscountType       string     `json:"discountType"`
	DiscountValue      int64      `json:"discountValue"`
	TaxEnabled         bool       `json:"taxEnabled"`
	TaxRateBps         int        `json:"taxRateBps"`
	PartnerChargeType  string     `json:"partnerChargeType"`
	PartnerChargeValue int64      `json:"partnerChargeValue"`
	CCCMarginCents     int64      `json:"cccMarginCents"`
	MarkupPercent      *int64     `json:"markupPercent,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ToJobResponse maps a job row to its API representation.
func ToJobResponse(job *repository.Job) *JobResponse {
	return &JobResponse{
		ID:                 job.ID,
		ContactID:          job.ContactID,
		PartnerID:          job.PartnerID,
		Status:             job.Status,
		DeliveryType:       job.DeliveryType,
		QuoteType:          job.QuoteType,
		QuotedValueCents:   job.QuotedValueCents,
		QuoteResponse:      job.QuoteResponse,
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
		MarkupPercent:      job.MarkupPercent,
		CreatedAt:          job.CreatedAt,
		UpdatedAt:          job.UpdatedAt,
	}
}

// StatusChangeResponse reports a persisted status change.
type StatusChangeResponse struct {
	JobID     uuid.UUID `json:"jobId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	Waived    bool      `json:"waived,omitempty"`
}

// ReadinessResponse is the full "what blocks each stage" report.
type ReadinessResponse struct {
	JobID        uuid.UUID                `json:"jobId"`
	Status       string                   `json:"status"`
	RulesVersion int                      `json:"rulesVersion"`
	Stages       []domain.TransitionCheck `json:"stages"`
}
