package handlers

import (
	"net/http"
	"strconv"

	"github.com/alumnihub/alumnihub-api/internal/services"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's notification records
type NotificationHandler struct {
	service services.NotificationServiceInterface
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service services.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// ListNotifications handles GET /api/v1/notifications?limit=N
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = parsed
	}

	response, err := h.service.ListForUser(c.Request.Context(), a, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, response)
}
