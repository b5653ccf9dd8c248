package logics_test

import (
	"context"
	"fmt"
	"testing"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_ListCap(t *testing.T) {
	s := newTestServices(t)
	user := makeUser(t, s.db, "reader", models.RoleMember)

	for i := 0; i < 25; i++ {
		s.notifications.Notify(user.ID,
			fmt.Sprintf("update %d", i),
			models.NotificationProjectUpdate,
			models.EntityRef{Kind: models.EntityProject, ID: "PJ00000000000"},
		)
	}

	notifications, err := s.notifications.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 20, "inbox is capped at 20 entries")
}

func TestNotificationService_MarkRead(t *testing.T) {
	s := newTestServices(t)
	user := makeUser(t, s.db, "reader", models.RoleMember)
	other := makeUser(t, s.db, "other", models.RoleMember)

	s.notifications.Notify(user.ID, "assigned", models.NotificationTaskAssigned,
		models.EntityRef{Kind: models.EntityTask, ID: "TA00000000000"})

	notifications, err := s.notifications.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	target := notifications[0]
	assert.False(t, target.IsRead)

	t.Run("recipient marks read", func(t *testing.T) {
		read, err := s.notifications.MarkRead(target.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	})

	t.Run("marking again is a no-op", func(t *testing.T) {
		read, err := s.notifications.MarkRead(target.ID, user.ID)
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	})

	t.Run("other users forbidden", func(t *testing.T) {
		_, err := s.notifications.MarkRead(target.ID, other.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code())
	})

	t.Run("unknown notification not found", func(t *testing.T) {
		_, err := s.notifications.MarkRead("NT00NOTEXIST0", user.ID)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrNotFound, appErr.Code())
	})
}

func TestNotificationService_UnreadCount(t *testing.T) {
	s := newTestServices(t)
	user := makeUser(t, s.db, "reader", models.RoleMember)
	ctx := context.Background()

	count, err := s.notifications.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	s.notifications.Notify(user.ID, "a", models.NotificationComment,
		models.EntityRef{Kind: models.EntityComment, ID: "CM00000000000"})
	s.notifications.Notify(user.ID, "b", models.NotificationComment,
		models.EntityRef{Kind: models.EntityComment, ID: "CM00000000000"})

	count, err = s.notifications.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	notifications, err := s.notifications.ListForUser(user.ID)
	require.NoError(t, err)
	_, err = s.notifications.MarkRead(notifications[0].ID, user.ID)
	require.NoError(t, err)

	count, err = s.notifications.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
