package domain

import "github.com/google/uuid"

// Favorite is a pure presence marker bookmarking an event for a user.
// It never interacts with capacity.
type Favorite struct {
	BaseModel
	EventID uuid.UUID `gorm:"type:uuid;not null;index:idx_favorites_event_id;uniqueIndex:uq_favorites_event_user" json:"event_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_favorites_user_id;uniqueIndex:uq_favorites_event_user" json:"user_id"`
	Event   Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}

// TableName specifies the table name for Favorite
func (Favorite) TableName() string {
	return "favorites"
}
