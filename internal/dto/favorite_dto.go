package dto

import (
	"time"

	"github.com/google/uuid"
)

// ToggleFavoriteResponse reports the resulting membership after a toggle
type ToggleFavoriteResponse struct {
	EventID   uuid.UUID `json:"eventId"`
	Favorited bool      `json:"favorited"`
}

// FavoriteResponse represents one bookmarked event
type FavoriteResponse struct {
	ID        uuid.UUID      `json:"id"`
	EventID   uuid.UUID      `json:"eventId"`
	CreatedAt time.Time      `json:"createdAt"`
	Event     *EventResponse `json:"event,omitempty"`
}
