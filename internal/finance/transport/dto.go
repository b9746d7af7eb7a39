package transport

import (
	"time"

	"ccc_backoffice/internal/finance/repository"

	"github.com/google/uuid"
)

// TransactionResponse is the API representation of a ledger entry.
type TransactionResponse struct {
	ID                uuid.UUID  `json:"id"`
	JobID             *uuid.UUID `json:"jobId,omitempty"`
	PartnerID         *uuid.UUID `json:"partnerId,omitempty"`
	Type              string     `json:"type"`
	AmountCents       int64      `json:"amountCents"`
	GrossAmountCents  int64      `json:"grossAmountCents"`
	ProfitAmountCents int64      `json:"profitAmountCents"`
	PartnerCostCents  int64      `json:"partnerCostCents"`
	SourceType        string     `json:"sourceType"`
	Description       string     `json:"description,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ToTransactionResponse maps a ledger row to its API representation.
func ToTransactionResponse(t *repository.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		JobID:             t.JobID,
		PartnerID:         t.PartnerID,
		Type:              t.Type,
		AmountCents:       t.AmountCents,
		GrossAmountCents:  t.GrossAmountCents,
		ProfitAmountCents: t.ProfitAmountCents,
		PartnerCostCents:  t.PartnerCostCents,
		SourceType:        t.SourceType,
		Description:       t.Description,
		CreatedAt:         t.CreatedAt,
	}
}
