package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// ProjectController handles project management.
type ProjectController struct {
	BaseController
	projectService *logics.ProjectService
}

// NewProjectController creates a new ProjectController instance.
func NewProjectController(base BaseController, projectService *logics.ProjectService) *ProjectController {
	return &ProjectController{BaseController: base, projectService: projectService}
}

// ListProjects handles GET /api/projects. Scoped to the actor's team unless
// the actor is an admin.
func (pc *ProjectController) ListProjects(c echo.Context) error {
	actor, err := pc.GetUserFromContext(c)
	if err != nil {
		return pc.Error(c, err)
	}

	projects, err := pc.projectService.List(actor)
	if err != nil {
		return pc.Error(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /api/projects/:id.
func (pc *ProjectController) GetProject(c echo.Context) error {
	if _, err := pc.GetUserFromContext(c); err != nil {
		return pc.Error(c, err)
	}

	project, err := pc.projectService.GetByID(c.Param("id"))
	if err != nil {
		return pc.Error(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

// CreateProject handles POST /api/projects.
func (pc *ProjectController) CreateProject(c echo.Context) error {
	actor, err := pc.GetUserFromContext(c)
	if err != nil {
		return pc.Error(c, err)
	}

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return pc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return pc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	project, err := pc.projectService.Create(&req, actor)
	if err != nil {
		return pc.Error(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// UpdateProjectStatus handles PUT /api/projects/:id/status.
func (pc *ProjectController) UpdateProjectStatus(c echo.Context) error {
	actor, err := pc.GetUserFromContext(c)
	if err != nil {
		return pc.Error(c, err)
	}

	var req models.UpdateProjectStatusRequest
	if err := c.Bind(&req); err != nil {
		return pc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return pc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	project, err := pc.projectService.UpdateStatus(c.Param("id"), req.Status, actor)
	if err != nil {
		return pc.Error(c, err)
	}
	return c.JSON(http.StatusOK, project)
}
