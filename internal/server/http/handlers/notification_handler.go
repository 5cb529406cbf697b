package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velikanov/docflow/internal/server/http/dto"
)

// NotificationHandler serves per-recipient notifications.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/notifications. Pass ?unread=true to filter.
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.facade.Notifications(c.Request.Context(), CurrentUserID(c), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(notifications) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, dto.NotificationResponse{
			ID:                n.ID,
			Type:              string(n.Type),
			Title:             n.Title,
			Message:           n.Message,
			RelatedDocumentID: n.RelatedDocumentID,
			IsRead:            n.IsRead,
			CreatedAt:         n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.facade.MarkNotificationRead(c.Request.Context(), c.Param("id"), CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
