package domain

import "github.com/google/uuid"

// Comment is an append/delete log entry attached to an event
type Comment struct {
	BaseModel
	EventID uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_event_id" json:"event_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Event   Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
