package controllers

import (
	"net/http"

	"taskhub-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// ActivityController exposes the audit trail.
type ActivityController struct {
	BaseController
	activityService *logics.ActivityService
}

// NewActivityController creates a new ActivityController instance.
func NewActivityController(base BaseController, activityService *logics.ActivityService) *ActivityController {
	return &ActivityController{BaseController: base, activityService: activityService}
}

// ListAll handles GET /api/activitylogs. Admin only, capped at 100 entries.
func (ac *ActivityController) ListAll(c echo.Context) error {
	if _, err := ac.RequireAdmin(c); err != nil {
		return ac.Error(c, err)
	}

	logs, err := ac.activityService.ListAll(100)
	if err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

// ListMine handles GET /api/activitylogs/me, capped at 50 entries.
func (ac *ActivityController) ListMine(c echo.Context) error {
	user, err := ac.GetUserFromContext(c)
	if err != nil {
		return ac.Error(c, err)
	}

	logs, err := ac.activityService.ListByUser(user.ID, 50)
	if err != nil {
		return ac.Error(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
