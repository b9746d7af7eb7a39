package transport

import (
	"time"

	"ccc_backoffice/internal/billing/repository"

	"github.com/google/uuid"
)

// LineItemRequest is one priced line as submitted by the client. Line totals
// are always recomputed server-side.
type LineItemRequest struct {
	Description    string  `json:"description" validate:"required,max=500"`
	Quantity       float64 `json:"quantity" validate:"gt=0"`
	UnitPriceCents int64   `json:"unitPriceCents" validate:"min=0"`
	SortOrder      int     `json:"sortOrder" validate:"min=0"`
}

// CreateDocumentRequest creates a quote or invoice with its line items.
type CreateDocumentRequest struct {
	JobID         uuid.UUID         `json:"jobId" validate:"required"`
	DocType       string            `json:"docType" validate:"required,oneof=quote invoice"`
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountType  string            `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue int64             `json:"discountValue" validate:"min=0"`
	TaxEnabled    bool              `json:"taxEnabled"`
	TaxRateBps    int               `json:"taxRateBps" validate:"min=0,max=10000"`
	ShowInPortal  bool              `json:"showInPortal"`
	Notes         string            `json:"notes" validate:"max=2000"`
}

// UpdateDocumentRequest replaces a document's pricing inputs and line items.
type UpdateDocumentRequest struct {
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountType  string            `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue int64             `json:"discountValue" validate:"min=0"`
	TaxEnabled    bool              `json:"taxEnabled"`
	TaxRateBps    int               `json:"taxRateBps" validate:"min=0,max=10000"`
	ShowInPortal  bool              `json:"showInPortal"`
	Notes         string            `json:"notes" validate:"max=2000"`
}

// CalculateRequest previews totals without persisting anything. When a job is
// given and clientView is set, the job's markup (or the global default) is
// applied before calculation.
type CalculateRequest struct {
	JobID           *uuid.UUID        `json:"jobId"`
	ClientView      bool              `json:"clientView"`
	Items           []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountType    string            `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue   int64             `json:"discountValue" validate:"min=0"`
	TaxEnabled      bool              `json:"taxEnabled"`
	TaxRateBps      int               `json:"taxRateBps" validate:"min=0,max=10000"`
	DepositRequired bool              `json:"depositRequired"`
	DepositType     string            `json:"depositType" validate:"omitempty,oneof=percentage fixed"`
	DepositValue    int64             `json:"depositValue" validate:"min=0"`
}

// UpdateDocumentStatusRequest moves a document through its status machine.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid accepted rejected"`
}

// LineItemResponse is the API representation of a line item.
type LineItemResponse struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       float64   `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	LineTotalCents int64     `json:"lineTotalCents"`
	SortOrder      int       `json:"sortOrder"`
}

// DocumentResponse is the API representation of a document with its items.
type DocumentResponse struct {
	ID                     uuid.UUID          `json:"id"`
	JobID                  uuid.UUID          `json:"jobId"`
	DocType                string             `json:"docType"`
	DocumentNumber         string             `json:"documentNumber"`
	Status                 string             `json:"status"`
	DiscountType           string             `json:"discountType"`
	DiscountValue          int64              `json:"discountValue"`
	TaxEnabled             bool               `json:"taxEnabled"`
	TaxRateBps             int                `json:"taxRateBps"`
	SubtotalCents          int64              `json:"subtotalCents"`
	DiscountAmountCents    int64              `json:"discountAmountCents"`
	TaxAmountCents         int64              `json:"taxAmountCents"`
	GrandTotalCents        int64              `json:"grandTotalCents"`
	DepositCalculatedCents int64              `json:"depositCalculatedCents"`
	ShowInPortal           bool               `json:"showInPortal"`
	Notes                  string             `json:"notes,omitempty"`
	Items                  []LineItemResponse `json:"items,omitempty"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

// ToDocumentResponse maps a document row and its items to the API shape.
func ToDocumentResponse(doc *repository.Document, items []repository.LineItem) *DocumentResponse {
	resp := &DocumentResponse{
		ID:                     doc.ID,
		JobID:                  doc.JobID,
		DocType:                doc.DocType,
		DocumentNumber:         doc.DocumentNumber,
		Status:                 doc.Status,
		DiscountType:           doc.DiscountType,
		DiscountValue:          doc.DiscountValue,
		TaxEnabled:             doc.TaxEnabled,
		TaxRateBps:             doc.TaxRateBps,
		SubtotalCents:          doc.SubtotalCents,
		DiscountAmountCents:    doc.DiscountAmountCents,
		TaxAmountCents:         doc.TaxAmountCents,
		GrandTotalCents:        doc.GrandTotalCents,
		DepositCalculatedCents: doc.DepositCalculatedCents,
		ShowInPortal:           doc.ShowInPortal,
		Notes:                  doc.Notes,
		CreatedAt:              doc.CreatedAt,
		UpdatedAt:              doc.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:             item.ID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: item.LineTotalCents,
			SortOrder:      item.SortOrder,
		})
	}
	return resp
}
