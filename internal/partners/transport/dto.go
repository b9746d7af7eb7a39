package transport

import (
	"time"

	"ccc_backoffice/internal/partners/repository"

	"github.com/google/uuid"
)

// CreatePartnerRequest registers a new partner company.
type CreatePartnerRequest struct {
	Name               string `json:"name" validate:"required,max=200"`
	ContactEmail       string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone       string `json:"contactPhone" validate:"omitempty,max=30"`
	DefaultChargeType  string `json:"defaultChargeType" validate:"omitempty,oneof=percentage fixed"`
	DefaultChargeValue int64  `json:"defaultChargeValue" validate:"min=0"`
}

// UpdatePartnerRequest is a partial update of partner fields.
type UpdatePartnerRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=200"`
	ContactEmail       *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone       *string `json:"contactPhone" validate:"omitempty,max=30"`
	DefaultChargeType  *string `json:"defaultChargeType" validate:"omitempty,oneof=percentage fixed"`
	DefaultChargeValue *int64  `json:"defaultChargeValue" validate:"omitempty,min=0"`
	Active             *bool   `json:"active"`
}

// SplitPreviewRequest previews the commission split for a gross amount.
type SplitPreviewRequest struct {
	GrossCents  int64  `json:"grossCents" validate:"required,min=1"`
	ChargeType  string `json:"chargeType" validate:"required,oneof=percentage fixed"`
	ChargeValue int64  `json:"chargeValue" validate:"min=0"`
}

// PartnerResponse is the API representation of a partner.
type PartnerResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	ContactEmail       string    `json:"contactEmail,omitempty"`
	ContactPhone       string    `json:"contactPhone,omitempty"`
	DefaultChargeType  string    `json:"defaultChargeType"`
	DefaultChargeValue int64     `json:"defaultChargeValue"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToPartnerResponse maps a partner row to its API representation.
func ToPartnerResponse(p *repository.Partner) *PartnerResponse {
	return &PartnerResponse{
		ID:                 p.ID,
		Name:               p.Name,
		ContactEmail:       p.ContactEmail,
		ContactPhone:       p.ContactPhone,
		DefaultChargeType:  p.DefaultChargeType,
		DefaultChargeValue: p.DefaultChargeValue,
		Active:             p.Active,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
