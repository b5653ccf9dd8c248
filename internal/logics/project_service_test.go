package logics_test

import (
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_ListScoping(t *testing.T) {
	s := newTestServices(t)
	admin := makeUser(t, s.db, "admin", models.RoleAdmin)
	managerA := makeUser(t, s.db, "managerA", models.RoleManager)
	managerB := makeUser(t, s.db, "managerB", models.RoleManager)
	teamA := makeTeam(t, s.db, managerA)
	teamB := makeTeam(t, s.db, managerB)
	makeProject(t, s.db, teamA)
	makeProject(t, s.db, teamA)
	makeProject(t, s.db, teamB)

	t.Run("admin sees all projects", func(t *testing.T) {
		projects, err := s.projects.List(admin)
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})

	t.Run("member sees only own team", func(t *testing.T) {
		projects, err := s.projects.List(managerA)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("teamless user sees nothing", func(t *testing.T) {
		loner := makeUser(t, s.db, "loner", models.RoleMember)
		projects, err := s.projects.List(loner)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestProjectService_Create(t *testing.T) {
	s := newTestServices(t)
	manager := makeUser(t, s.db, "manager", models.RoleManager)
	member := makeUser(t, s.db, "member", models.RoleMember)
	team := makeTeam(t, s.db, manager)
	joinTeam(t, s.db, team, member)

	t.Run("manager creates project in planning", func(t *testing.T) {
		project, err := s.projects.Create(&models.CreateProjectRequest{
			Name:   "Launch",
			TeamID: team.ID,
		}, manager)
		require.NoError(t, err)
		assert.Equal(t, models.ProjectStatusPlanning, project.Status)
		assert.Equal(t, team.ID, project.TeamID)
	})

	t.Run("plain member forbidden", func(t *testing.T) {
		_, err := s.projects.Create(&models.CreateProjectRequest{
			Name:   "Shadow",
			TeamID: team.ID,
		}, member)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})

	t.Run("unknown team not found", func(t *testing.T) {
		_, err := s.projects.Create(&models.CreateProjectRequest{
			Name:   "Nowhere",
			TeamID: "TM00NOTEXIST0",
		}, manager)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})
}

func TestProjectService_UpdateStatus(t *testing.T) {
	s := newTestServices(t)
	manager := makeUser(t, s.db, "manager", models.RoleManager)
	team := makeTeam(t, s.db, manager)
	project := makeProject(t, s.db, team)

	updated, err := s.projects.UpdateStatus(project.ID, models.ProjectStatusCompleted, manager)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, updated.Status)

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := s.projects.UpdateStatus(project.ID, "paused", manager)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
	})
}
