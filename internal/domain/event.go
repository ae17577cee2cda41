package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event represents a volunteer opportunity with a capacity and schedule
type Event struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_events_owner_id" json:"owner_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Task        string    `gorm:"type:text" json:"task"`
	Category    string    `gorm:"type:varchar(100);not null;index:idx_events_category" json:"category"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	StartsAt    time.Time `gorm:"type:timestamp;not null;index:idx_events_starts_at" json:"starts_at"`
	// MaxVolunteers is the capacity; CurrentVolunteers is the denormalized count of
	// participations in signed_up status and must only be mutated through atomic
	// expression updates or the reconcile routine.
	MaxVolunteers     int            `gorm:"not null" json:"max_volunteers"`
	CurrentVolunteers int            `gorm:"not null;default:0" json:"current_volunteers"`
	ImageKeys         datatypes.JSON `gorm:"type:jsonb" json:"image_keys"`
	Participations    []Participation `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"participations,omitempty"`
	Favorites         []Favorite      `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"favorites,omitempty"`
	Comments          []Comment       `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// SpotsLeft returns the remaining capacity, never negative
func (e *Event) SpotsLeft() int {
	left := e.MaxVolunteers - e.CurrentVolunteers
	if left < 0 {
		return 0
	}
	return left
}

// IsFull reports whether the event has reached its capacity
func (e *Event) IsFull() bool {
	return e.CurrentVolunteers >= e.MaxVolunteers
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}
