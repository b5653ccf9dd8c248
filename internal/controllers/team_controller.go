package controllers

import (
	"net/http"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/logics"
	"taskhub-server/internal/models"

	"github.com/labstack/echo/v4"
)

// TeamController handles team management.
type TeamController struct {
	BaseController
	teamService *logics.TeamService
}

// NewTeamController creates a new TeamController instance.
func NewTeamController(base BaseController, teamService *logics.TeamService) *TeamController {
	return &TeamController{BaseController: base, teamService: teamService}
}

// ListTeams handles GET /api/teams.
func (tc *TeamController) ListTeams(c echo.Context) error {
	if _, err := tc.GetUserFromContext(c); err != nil {
		return tc.Error(c, err)
	}

	teams, err := tc.teamService.List()
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, teams)
}

// CreateTeam handles POST /api/teams. Admin only.
func (tc *TeamController) CreateTeam(c echo.Context) error {
	admin, err := tc.RequireAdmin(c)
	if err != nil {
		return tc.Error(c, err)
	}

	var req models.CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	team, err := tc.teamService.Create(&req, admin.ID)
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusCreated, team)
}

// AddMember handles PUT /api/teams/:id/members. Team manager or admin.
func (tc *TeamController) AddMember(c echo.Context) error {
	actor, err := tc.GetUserFromContext(c)
	if err != nil {
		return tc.Error(c, err)
	}

	var req models.AddTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return tc.Error(c, apperrors.InvalidArgument(err.Error()))
	}

	team, err := tc.teamService.AddMember(c.Param("id"), req.UserID, actor)
	if err != nil {
		return tc.Error(c, err)
	}
	return c.JSON(http.StatusOK, team)
}
