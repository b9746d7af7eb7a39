package transport

import (
	"time"

	"ccc_backoffice/internal/callouts/repository"

	"github.com/google/uuid"
)

// CreateCalloutRequest records an emergency callout delivered by a partner.
type CreateCalloutRequest struct {
	JobID               *uuid.UUID `json:"jobId"`
	AssignedPartnerID   uuid.UUID  `json:"assignedPartnerId" validate:"required"`
	Description         string     `json:"description" validate:"max=2000"`
	TotalCollectedCents int64      `json:"totalCollectedCents" validate:"required,min=1"`
	CalloutFeePercent   int64      `json:"calloutFeePercent" validate:"min=0,max=100"`
}

// CalloutResponse is the API representation of an emergency callout.
type CalloutResponse struct {
	ID                    uuid.UUID  `json:"id"`
	JobID                 *uuid.UUID `json:"jobId,omitempty"`
	AssignedPartnerID     uuid.UUID  `json:"assignedPartnerId"`
	Description           string     `json:"description,omitempty"`
	TotalCollectedCents   int64      `json:"totalCollectedCents"`
	CalloutFeePercent     int64      `json:"calloutFeePercent"`
	CalloutFeeAmountCents int64      `json:"calloutFeeAmountCents"`
	FeePaid               bool       `json:"feePaid"`
	FeePaidAt             *time.Time `json:"feePaidAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// ToCalloutResponse maps a callout row to its API representation.
func ToCalloutResponse(c *repository.Callout) *CalloutResponse {
	return &CalloutResponse{
		ID:                    c.ID,
		JobID:                 c.JobID,
		AssignedPartnerID:     c.AssignedPartnerID,
		Description:           c.Description,
		TotalCollectedCents:   c.TotalCollectedCents,
		CalloutFeePercent:     c.CalloutFeePercent,
		CalloutFeeAmountCents: c.CalloutFeeAmountCents,
		FeePaid:               c.FeePaid,
		FeePaidAt:             c.FeePaidAt,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
