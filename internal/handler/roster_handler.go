package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"volunteer-events-api/internal/response"
	"volunteer-events-api/internal/service"
)

type RosterHandler struct {
	rosterService service.RosterService
	logger        *zap.Logger
}

func NewRosterHandler(rosterService service.RosterService, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		logger:        logger,
	}
}

// GetRoster returns the event's participants grouped by status; owner only
func (h *RosterHandler) GetRoster(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	result, err := h.rosterService.GetRoster(c.Request.Context(), userID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
