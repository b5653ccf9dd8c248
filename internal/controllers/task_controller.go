package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// TaskController handles HTTP requests for tasks and subtasks.
type TaskController struct {
	BaseController
	taskService *logics.TaskService
}

// NewTaskController creates a new TaskController instance.
func NewTaskController(base BaseController, taskService *logics.TaskService) *TaskController {
	return &TaskController{BaseController: base, taskService: taskService}
}

// ListTasks handles GET /api/tasks, optionally filtered by ?project=.
func (tc *TaskController) ListTasks(c echo.Context) error {
	if _, err := tc.GetUserFromContext(c); err != nil {
		return tc.Error(c, err)
	}

	tasks, err := tc.taskService.List(c.QueryParam("project"))
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/:id.
func (tc *TaskController) GetTask(c echo.Context) error {
	if _, err := tc.GetUserFromContext(c); err != nil {
		return tc.Error(c, err)
	}

	task, err := tc.taskService.GetByID(c.Param("id"))
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// ListSubtasks handles GET /api/tasks/:id/subtasks.
func (tc *TaskController) ListSubtasks(c echo.Context) error {
	if _, err := tc.GetUserFromContext(c); err != nil {
		return tc.Error(c, err)
	}

	subtasks, err := tc.taskService.ListSubtasks(c.Param("id"))
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, subtasks)
}

// CreateTask handles POST /api/tasks.
func (tc *TaskController) CreateTask(c echo.Context) error {
	creator, err := tc.GetUserFromContext(c)
	if err != nil {
		return tc.Error(c, err)
	}

	var req models.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	task, err := tc.taskService.Create(&req, creator)
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:id.
func (tc *TaskController) UpdateTask(c echo.Context) error {
	actor, err := tc.GetUserFromContext(c)
	if err != nil {
		return tc.Error(c, err)
	}

	var update models.TaskUpdate
	if err := c.Bind(&update); err != nil {
		return tc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}

	task, err := tc.taskService.Update(c.Param("id"), &update, actor)
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (tc *TaskController) DeleteTask(c echo.Context) error {
	actor, err := tc.GetUserFromContext(c)
	if err != nil {
		return tc.Error(c, err)
	}

	if err := tc.taskService.Delete(c.Param("id"), actor); err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "task deleted"})
}
