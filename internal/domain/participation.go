package domain

import "github.com/google/uuid"

// ParticipationStatus represents the lifecycle state of a participation
type ParticipationStatus string

const (
	ParticipationSignedUp  ParticipationStatus = "signed_up"
	ParticipationWithdrawn ParticipationStatus = "withdrawn"
	ParticipationAttended  ParticipationStatus = "attended"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationSignedUp, ParticipationWithdrawn, ParticipationAttended:
		return true
	}
	return false
}

// Participation records one user's engagement history with one event.
// It is the source of truth for membership; Event.CurrentVolunteers is a
// cached aggregate of rows in signed_up status.
type Participation struct {
	BaseModel
	EventID uuid.UUID           `gorm:"type:uuid;not null;index:idx_participations_event_id;uniqueIndex:uq_participations_event_user" json:"event_id"`
	UserID  uuid.UUID           `gorm:"type:uuid;not null;index:idx_participations_user_id;uniqueIndex:uq_participations_event_user" json:"user_id"`
	Status  ParticipationStatus `gorm:"type:varchar(20);not null;default:'signed_up';index:idx_participations_status" json:"status"`
	Event   Event               `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}

// CapacityDelta returns the capacity adjustment caused by transitioning from
// the receiver's status to next: +1 entering signed_up, -1 leaving it, 0 otherwise.
func (p *Participation) CapacityDelta(next ParticipationStatus) int {
	wasActive := p.Status == ParticipationSignedUp
	willBeActive := next == ParticipationSignedUp
	switch {
	case !wasActive && willBeActive:
		return 1
	case wasActive && !willBeActive:
		return -1
	default:
		return 0
	}
}

// TableName specifies the table name for Participation
func (Participation) TableName() string {
	return "participations"
}
