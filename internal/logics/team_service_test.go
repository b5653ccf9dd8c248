package logics_test

import (
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService_Create(t *testing.T) {
	s := newTestServices(t)
	admin := makeUser(t, s.db, "admin", models.RoleAdmin)
	manager := makeUser(t, s.db, "manager", models.RoleManager)
	member := makeUser(t, s.db, "member", models.RoleMember)

	t.Run("manager becomes first member", func(t *testing.T) {
		team, err := s.teams.Create(&models.CreateTeamRequest{
			Name:      "Platform",
			ManagerID: manager.ID,
		}, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, manager.ID, team.ManagerID)
		require.Len(t, team.Members, 1)
		assert.Equal(t, manager.ID, team.Members[0].ID)

		got, err := s.users.GetByID(manager.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TeamID)
		assert.Equal(t, team.ID, *got.TeamID)
	})

	t.Run("member cannot be designated manager", func(t *testing.T) {
		_, err := s.teams.Create(&models.CreateTeamRequest{
			Name:      "Rogue",
			ManagerID: member.ID,
		}, admin.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
	})

	t.Run("unknown manager not found", func(t *testing.T) {
		_, err := s.teams.Create(&models.CreateTeamRequest{
			Name:      "Ghost",
			ManagerID: "US00NOTEXIST0",
		}, admin.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})
}

func TestTeamService_AddMember(t *testing.T) {
	s := newTestServices(t)
	manager := makeUser(t, s.db, "manager", models.RoleManager)
	member := makeUser(t, s.db, "member", models.RoleMember)
	outsider := makeUser(t, s.db, "outsider", models.RoleMember)
	team := makeTeam(t, s.db, manager)

	t.Run("manager can add members", func(t *testing.T) {
		got, err := s.teams.AddMember(team.ID, member.ID, manager)
		require.NoError(t, err)
		assert.Len(t, got.Members, 2)
	})

	t.Run("adding twice conflicts", func(t *testing.T) {
		_, err := s.teams.AddMember(team.ID, member.ID, manager)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrConflict, appErr.Code())
	})

	t.Run("non-manager forbidden", func(t *testing.T) {
		_, err := s.teams.AddMember(team.ID, outsider.ID, member)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})

	t.Run("admin may add to any team", func(t *testing.T) {
		admin := makeUser(t, s.db, "admin", models.RoleAdmin)
		got, err := s.teams.AddMember(team.ID, outsider.ID, admin)
		require.NoError(t, err)
		assert.Len(t, got.Members, 3)
	})
}
