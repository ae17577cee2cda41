package dto

import (
	"time"

	"github.com/google/uuid"

	"volunteer-events-api/internal/domain"
)

// ParticipationResponse represents one user's participation record
type ParticipationResponse struct {
	ID        uuid.UUID                  `json:"id"`
	EventID   uuid.UUID                  `json:"eventId"`
	UserID    uuid.UUID                  `json:"userId"`
	Status    domain.ParticipationStatus `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// SignUpResponse carries the fresh participation and the updated headcount
type SignUpResponse struct {
	Participation     ParticipationResponse `json:"participation"`
	CurrentVolunteers int                   `json:"currentVolunteers"`
}

// SetStatusRequest represents the organiser roster action on one participation
type SetStatusRequest struct {
	Status domain.ParticipationStatus `json:"status" binding:"required" example:"attended"`
}

// MySignupResponse joins a participation with its event for the "my signups" view
type MySignupResponse struct {
	Participation ParticipationResponse `json:"participation"`
	Event         *EventResponse        `json:"event,omitempty"`
}

// NewParticipationResponse converts a domain.Participation to a ParticipationResponse
func NewParticipationResponse(p *domain.Participation) ParticipationResponse {
	return ParticipationResponse{
		ID:        p.ID,
		EventID:   p.EventID,
		UserID:    p.UserID,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
