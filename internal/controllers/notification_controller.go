package controllers

import (
	"net/http"

	"taskhub-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// NotificationController handles the per-user notification inbox.
type NotificationController struct {
	BaseController
	notificationService *logics.NotificationService
}

// NewNotificationController creates a new NotificationController instance.
func NewNotificationController(base BaseController, notificationService *logics.NotificationService) *NotificationController {
	return &NotificationController{BaseController: base, notificationService: notificationService}
}

// ListNotifications handles GET /api/notifications.
func (nc *NotificationController) ListNotifications(c echo.Context) error {
	user, err := nc.GetUserFromContext(c)
	if err != nil {
		return nc.Error(c, err)
	}

	notifications, err := nc.notificationService.ListForUser(user.ID)
	if err != nil {
		return nc.Error(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (nc *NotificationController) UnreadCount(c echo.Context) error {
	user, err := nc.GetUserFromContext(c)
	if err != nil {
		return nc.Error(c, err)
	}

	count, err := nc.notificationService.UnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return nc.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (nc *NotificationController) MarkRead(c echo.Context) error {
	user, err := nc.GetUserFromContext(c)
	if err != nil {
		return nc.Error(c, err)
	}

	notification, err := nc.notificationService.MarkRead(c.Param("id"), user.ID)
	if err != nil {
		return nc.Error(c, err)
	}
	return c.JSON(http.StatusOK, notification)
}
