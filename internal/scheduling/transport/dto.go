package transport

import (
	"time"

	"ccc_backoffice/internal/scheduling/repository"

	"github.com/google/uuid"
)

// CreateProposalRequest proposes a work-start date for a job.
type CreateProposalRequest struct {
	JobID         uuid.UUID `json:"jobId" validate:"required"`
	ProposedStart time.Time `json:"proposedStart" validate:"required"`
}

// ProposalResponse is the API representation of a schedule proposal.
type ProposalResponse struct {
	ID            uuid.UUID `json:"id"`
	JobID         uuid.UUID `json:"jobId"`
	ProposedStart time.Time `json:"proposedStart"`
	Status        string    `json:"status"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToProposalResponse maps a proposal row to its API representation.
func ToProposalResponse(p *repository.Proposal) *ProposalResponse {
	return &ProposalResponse{
		ID:            p.ID,
		JobID:         p.JobID,
		ProposedStart: p.ProposedStart,
		Status:        p.Status,
		Archived:      p.Archived,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
