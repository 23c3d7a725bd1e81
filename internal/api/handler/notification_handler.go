package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// NotificationHandler serves the per-user notification inbox.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListForUser handles GET /api/users/:id/notifications?unread=true.
//
// @Summary      List a user's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "User id"
// @Param        unread  query  bool    false  "Only unread notifications"
// @Success      200  {array}  domain.Notification
// @Router       /api/users/{id}/notifications [get]
func (h *NotificationHandler) ListForUser(c echo.Context) error {
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.service.ListForUser(c.Request().Context(), c.Param("id"), unreadOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead handles PATCH /api/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  markReadResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.service.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markReadResponse{Success: true})
}
