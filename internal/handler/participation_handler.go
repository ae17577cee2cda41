package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/response"
	"volunteer-events-api/internal/service"
)

type ParticipationHandler struct {
	participationService service.ParticipationService
	logger               *zap.Logger
}

func NewParticipationHandler(participationService service.ParticipationService, logger *zap.Logger) *ParticipationHandler {
	return &ParticipationHandler{
		participationService: participationService,
		logger:               logger,
	}
}

// SignUp signs the caller up for an event. Returns 409 when the event is
// full or the caller is already signed up.
func (h *ParticipationHandler) SignUp(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	result, err := h.participationService.SignUp(c.Request.Context(), userID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// Withdraw cancels the caller's own signup
func (h *ParticipationHandler) Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	participationID, ok := pathUUID(c, "participationId")
	if !ok {
		return
	}

	result, err := h.participationService.Withdraw(c.Request.Context(), userID, eventID, participationID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// SetStatus lets the event owner move a participation between states
func (h *ParticipationHandler) SetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	participationID, ok := pathUUID(c, "participationId")
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.participationService.SetStatus(c.Request.Context(), userID, participationID, req.Status)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetMySignups returns the caller's participations with their events
func (h *ParticipationHandler) GetMySignups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.participationService.GetMySignups(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
