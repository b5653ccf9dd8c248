package logics_test

import (
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogService_Create(t *testing.T) {
	s := newTestServices(t)
	manager := makeUser(t, s.db, "manager", models.RoleManager)
	assignee := makeUser(t, s.db, "assignee", models.RoleMember)
	team := makeTeam(t, s.db, manager)
	joinTeam(t, s.db, team, assignee)
	project := makeProject(t, s.db, team)

	task, err := s.tasks.Create(&models.CreateTaskRequest{
		Title: "Timed", ProjectID: project.ID, AssigneeID: &assignee.ID,
	}, manager)
	require.NoError(t, err)

	t.Run("assignee logs time", func(t *testing.T) {
		log, err := s.timeLogs.Create(task.ID, &models.CreateTimeLogRequest{
			Duration:    90,
			Description: "implementation",
		}, assignee)
		require.NoError(t, err)
		assert.Equal(t, 90, log.Duration)
		assert.Equal(t, assignee.ID, log.UserID)
		assert.False(t, log.Date.IsZero())
	})

	t.Run("non-assignee forbidden", func(t *testing.T) {
		_, err := s.timeLogs.Create(task.ID, &models.CreateTimeLogRequest{Duration: 30}, manager)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})

	t.Run("unknown task not found", func(t *testing.T) {
		_, err := s.timeLogs.Create("TA00NOTEXIST0", &models.CreateTimeLogRequest{Duration: 30}, assignee)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})

	t.Run("list returns logged entries", func(t *testing.T) {
		logs, err := s.timeLogs.ListForTask(task.ID)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, 90, logs[0].Duration)
	})
}

func TestTimeLogService_UnassignedTask(t *testing.T) {
	s := newTestServices(t)
	manager := makeUser(t, s.db, "manager", models.RoleManager)
	team := makeTeam(t, s.db, manager)
	project := makeProject(t, s.db, team)

	task, err := s.tasks.Create(&models.CreateTaskRequest{Title: "Open", ProjectID: project.ID}, manager)
	require.NoError(t, err)

	// Without an assignee anyone on the task may log time.
	log, err := s.timeLogs.Create(task.ID, &models.CreateTimeLogRequest{Duration: 15}, manager)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, log.UserID)
}
