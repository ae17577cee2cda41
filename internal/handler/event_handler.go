package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/response"
	"volunteer-events-api/internal/service"
)

type EventHandler struct {
	eventService service.EventService
	logger       *zap.Logger
}

func NewEventHandler(eventService service.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent creates a new event owned by the caller
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.eventService.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListEvents returns events, optionally filtered by category and start time
func (h *EventHandler) ListEvents(c *gin.Context) {
	filters := repository.EventFilters{
		Category:     c.Query("category"),
		UpcomingOnly: c.Query("upcoming") == "true",
	}

	result, err := h.eventService.ListEvents(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetEvent returns one event with the viewer's signup and favorite state.
// Works without authentication; the viewer state is zero-valued then.
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	viewerID := uuid.Nil
	if raw, exists := c.Get("user_id"); exists {
		if id, isUUID := raw.(uuid.UUID); isUUID {
			viewerID = id
		}
	}

	result, err := h.eventService.GetEvent(c.Request.Context(), viewerID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetMyEvents returns events owned by the caller
func (h *EventHandler) GetMyEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.eventService.GetMyEvents(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateEvent partially updates an event; owner only
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.eventService.UpdateEvent(c.Request.Context(), userID, eventID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteEvent removes an event and everything attached to it; owner only
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), userID, eventID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// PresignImageUpload returns a presigned URL for uploading an event image
func (h *EventHandler) PresignImageUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.eventService.PresignImageUpload(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
