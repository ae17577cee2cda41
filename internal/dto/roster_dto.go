package dto

import (
	"time"

	"github.com/google/uuid"

	"volunteer-events-api/internal/domain"
)

// RosterEntry is one participant row in the organiser-facing roster,
// a participation joined with the user's profile.
type RosterEntry struct {
	ParticipationID uuid.UUID                  `json:"participationId"`
	UserID          uuid.UUID                  `json:"userId"`
	DisplayName     string                     `json:"displayName"`
	Email           string                     `json:"email"`
	Status          domain.ParticipationStatus `json:"status"`
	SignedUpAt      time.Time                  `json:"signedUpAt"`
}

// RosterResponse partitions all participations of one event by status.
// The three buckets together contain every record exactly once, each sorted
// by signup time descending.
type RosterResponse struct {
	EventID   uuid.UUID     `json:"eventId"`
	Active    []RosterEntry `json:"active"`
	Withdrawn []RosterEntry `json:"withdrawn"`
	Attended  []RosterEntry `json:"attended"`
}
