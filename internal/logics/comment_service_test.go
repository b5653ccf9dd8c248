package logics_test

import (
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentFixture(t *testing.T, s *testServices) (*models.User, *models.User, *models.Task) {
	t.Helper()

	manager := makeUser(t, s.db, "manager", models.RoleManager)
	assignee := makeUser(t, s.db, "assignee", models.RoleMember)
	team := makeTeam(t, s.db, manager)
	joinTeam(t, s.db, team, assignee)
	project := makeProject(t, s.db, team)

	task, err := s.tasks.Create(&models.CreateTaskRequest{
		Title: "Discuss", ProjectID: project.ID, AssigneeID: &assignee.ID,
	}, manager)
	require.NoError(t, err)
	return manager, assignee, task
}

func TestCommentService_Create(t *testing.T) {
	s := newTestServices(t)
	manager, assignee, task := commentFixture(t, s)

	t.Run("comment by another user notifies assignee", func(t *testing.T) {
		comment, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "Looks good"}, manager)
		require.NoError(t, err)
		assert.Equal(t, task.ID, comment.TaskID)
		assert.EqualValues(t, 1, countNotifications(t, s, assignee.ID, models.NotificationComment))
	})

	t.Run("assignee commenting on own task does not notify", func(t *testing.T) {
		before := countNotifications(t, s, assignee.ID, models.NotificationComment)
		_, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "On it"}, assignee)
		require.NoError(t, err)
		assert.Equal(t, before, countNotifications(t, s, assignee.ID, models.NotificationComment))
	})

	t.Run("reply to unknown parent not found", func(t *testing.T) {
		parentID := "CM00NOTEXIST0"
		_, err := s.comments.Create(task.ID, &models.CreateCommentRequest{
			Text: "Re", ParentCommentID: &parentID,
		}, manager)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})
}

func TestCommentService_ListThreads(t *testing.T) {
	s := newTestServices(t)
	manager, assignee, task := commentFixture(t, s)

	root, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "Root"}, manager)
	require.NoError(t, err)
	_, err = s.comments.Create(task.ID, &models.CreateCommentRequest{
		Text: "Reply", ParentCommentID: &root.ID,
	}, assignee)
	require.NoError(t, err)

	threads, err := s.comments.ListForTask(task.ID)
	require.NoError(t, err)
	require.Len(t, threads, 1, "replies must not appear as roots")
	assert.Equal(t, root.ID, threads[0].ID)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, "Reply", threads[0].Replies[0].Text)
}

func TestCommentService_AuthorOnlyMutation(t *testing.T) {
	s := newTestServices(t)
	manager, assignee, task := commentFixture(t, s)

	comment, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "Original"}, manager)
	require.NoError(t, err)

	t.Run("author can edit", func(t *testing.T) {
		updated, err := s.comments.Update(comment.ID, "Edited", manager.ID)
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Text)
	})

	t.Run("non-author cannot edit", func(t *testing.T) {
		_, err := s.comments.Update(comment.ID, "Hijacked", assignee.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})

	t.Run("non-author cannot delete", func(t *testing.T) {
		err := s.comments.Delete(comment.ID, assignee.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})
}

func TestCommentService_DeleteRootRemovesReplies(t *testing.T) {
	s := newTestServices(t)
	manager, assignee, task := commentFixture(t, s)

	root, err := s.comments.Create(task.ID, &models.CreateCommentRequest{Text: "Root"}, manager)
	require.NoError(t, err)
	reply, err := s.comments.Create(task.ID, &models.CreateCommentRequest{
		Text: "Reply", ParentCommentID: &root.ID,
	}, assignee)
	require.NoError(t, err)

	require.NoError(t, s.comments.Delete(root.ID, manager.ID))

	var count int64
	require.NoError(t, s.db.Model(&models.Comment{}).
		Where("id IN ?", []string{root.ID, reply.ID}).
		Count(&count).Error)
	assert.Zero(t, count)
}
