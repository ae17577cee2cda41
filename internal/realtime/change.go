package realtime

import (
	"time"

	"github.com/google/uuid"
)

// ChangeKind labels what part of an event's state moved
type ChangeKind string

const (
	ChangeCapacity      ChangeKind = "capacity"
	ChangeParticipation ChangeKind = "participation"
	ChangeFavorite      ChangeKind = "favorite"
	ChangeEvent         ChangeKind = "event"
	ChangeComment       ChangeKind = "comment"
)

// Change is a notification that an event's state changed. It carries the
// latest snapshot values so consumers can overwrite their local state
// idempotently; deliveries across different kinds have no ordering guarantee.
type Change struct {
	EventID           uuid.UUID  `json:"eventId"`
	Kind              ChangeKind `json:"kind"`
	CurrentVolunteers int        `json:"currentVolunteers"`
	MaxVolunteers     int        `json:"maxVolunteers"`
	Deleted           bool       `json:"deleted,omitempty"`
	At                time.Time  `json:"at"`
}
