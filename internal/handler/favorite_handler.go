package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"volunteer-events-api/internal/response"
	"volunteer-events-api/internal/service"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
	logger          *zap.Logger
}

func NewFavoriteHandler(favoriteService service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
	}
}

// Toggle flips the caller's favorite mark on an event
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, ok := pathUUID(c, "eventId")
	if !ok {
		return
	}

	result, err := h.favoriteService.Toggle(c.Request.Context(), userID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetMyFavorites returns the caller's favorited events
func (h *FavoriteHandler) GetMyFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.favoriteService.GetMyFavorites(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
