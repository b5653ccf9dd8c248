package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// TimeLogController handles time tracking on tasks.
type TimeLogController struct {
	BaseController
	timeLogService *logics.TimeLogService
}

// NewTimeLogController creates a new TimeLogController instance.
func NewTimeLogController(base BaseController, timeLogService *logics.TimeLogService) *TimeLogController {
	return &TimeLogController{BaseController: base, timeLogService: timeLogService}
}

// ListTimeLogs handles GET /api/tasks/:id/timelogs.
func (tc *TimeLogController) ListTimeLogs(c echo.Context) error {
	if _, err := tc.GetUserFromContext(c); err != nil {
		return tc.Error(c, err)
	}

	logs, err := tc.timeLogService.ListForTask(c.Param("id"))
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

// CreateTimeLog handles POST /api/tasks/:id/timelogs.
func (tc *TimeLogController) CreateTimeLog(c echo.Context) error {
	actor, err := tc.GetUserFromContext(c)
	if err != nil {
		return tc.Error(c, err)
	}

	var req models.CreateTimeLogRequest
	if err := c.Bind(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	log, err := tc.timeLogService.Create(c.Param("id"), &req, actor)
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusCreated, log)
}
