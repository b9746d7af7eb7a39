package transport

import (
	"time"

	"ccc_backoffice/internal/surveys/repository"

	"github.com/google/uuid"
)

// CreateSurveyRequest requests a site survey for a job.
type CreateSurveyRequest struct {
	JobID        uuid.UUID  `json:"jobId" validate:"required"`
	PartnerID    uuid.UUID  `json:"partnerId" validate:"required"`
	ProposedDate *time.Time `json:"proposedDate"`
	Notes        string     `json:"notes" validate:"max=2000"`
}

// UpdateSurveyStatusRequest advances the survey lifecycle.
type UpdateSurveyStatusRequest struct {
	Status        string     `json:"status" validate:"required,oneof=accepted declined scheduled completed"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// UpdateBookingRequest advances the booking negotiation with the client.
type UpdateBookingRequest struct {
	BookingStatus string     `json:"bookingStatus" validate:"required,oneof=pending_client client_accepted client_declined client_counter confirmed"`
	ProposedDate  *time.Time `json:"proposedDate"`
}

// SurveyResponse is the API representation of a survey.
type SurveyResponse struct {
	ID            uuid.UUID  `json:"id"`
	JobID         uuid.UUID  `json:"jobId"`
	PartnerID     uuid.UUID  `json:"partnerId"`
	Status        string     `json:"status"`
	BookingStatus string     `json:"bookingStatus"`
	ProposedDate  *time.Time `json:"proposedDate,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ToSurveyResponse maps a survey row to its API representation.
func ToSurveyResponse(s *repository.Survey) *SurveyResponse {
	return &SurveyResponse{
		ID:            s.ID,
		JobID:         s.JobID,
		PartnerID:     s.PartnerID,
		Status:        s.Status,
		BookingStatus: s.BookingStatus,
		ProposedDate:  s.ProposedDate,
		ScheduledDate: s.ScheduledDate,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
