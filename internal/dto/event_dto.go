package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"volunteer-events-api/internal/domain"
)

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title         string    `json:"title" binding:"required,min=1,max=255" example:"River cleanup"`
	Description   string    `json:"description" example:"Monthly cleanup along the east bank"`
	Task          string    `json:"task" example:"Collect litter, sort recyclables"`
	Category      string    `json:"category" binding:"required,max=100" example:"environment"`
	Location      string    `json:"location" binding:"max=255" example:"East bank pier 3"`
	StartsAt      time.Time `json:"startsAt" binding:"required"`
	MaxVolunteers int       `json:"maxVolunteers" binding:"required,min=1" example:"20"`
	ImageKeys     []string  `json:"imageKeys"`
}

// UpdateEventRequest represents the request to edit an event.
// Nil fields are left untouched.
type UpdateEventRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description   *string    `json:"description"`
	Task          *string    `json:"task"`
	Category      *string    `json:"category" binding:"omitempty,max=100"`
	Location      *string    `json:"location" binding:"omitempty,max=255"`
	StartsAt      *time.Time `json:"startsAt"`
	MaxVolunteers *int       `json:"maxVolunteers" binding:"omitempty,min=1"`
	ImageKeys     []string   `json:"imageKeys"`
}

// EventResponse represents an event in listings
type EventResponse struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"ownerId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Task              string    `json:"task"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	StartsAt          time.Time `json:"startsAt"`
	MaxVolunteers     int       `json:"maxVolunteers"`
	CurrentVolunteers int       `json:"currentVolunteers"`
	SpotsLeft         int       `json:"spotsLeft"`
	IsFull            bool      `json:"isFull"`
	ImageKeys         []string  `json:"imageKeys"`
	CreatedAt         time.Time `json:"createdAt"`
}

// EventDetailResponse adds the viewer's own relationship to the event
type EventDetailResponse struct {
	EventResponse
	IsSignedUp      bool       `json:"isSignedUp"`
	IsFavorite      bool       `json:"isFavorite"`
	ParticipationID *uuid.UUID `json:"participationId,omitempty"`
}

// PresignUploadRequest represents the request for an image upload URL
type PresignUploadRequest struct {
	FileName    string `json:"fileName" binding:"required" example:"banner.jpg"`
	ContentType string `json:"contentType" binding:"required" example:"image/jpeg"`
}

// PresignUploadResponse carries the upload URL and the key to store on the event
type PresignUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// NewEventResponse converts a domain.Event to an EventResponse
func NewEventResponse(event *domain.Event) *EventResponse {
	var keys []string
	if len(event.ImageKeys) > 0 {
		// Stored as a JSON array of S3 keys; ignore malformed values
		_ = json.Unmarshal(event.ImageKeys, &keys)
	}
	return &EventResponse{
		ID:                event.ID,
		OwnerID:           event.OwnerID,
		Title:             event.Title,
		Description:       event.Description,
		Task:              event.Task,
		Category:          event.Category,
		Location:          event.Location,
		StartsAt:          event.StartsAt,
		MaxVolunteers:     event.MaxVolunteers,
		CurrentVolunteers: event.CurrentVolunteers,
		SpotsLeft:         event.SpotsLeft(),
		IsFull:            event.IsFull(),
		ImageKeys:         keys,
		CreatedAt:         event.CreatedAt,
	}
}
