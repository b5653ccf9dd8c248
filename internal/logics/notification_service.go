package logics

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const unreadCountTTL = 5 * time.Minute

// NotificationService delivers in-app notifications. Delivery is best-effort:
// a failed notification never fails the mutation that triggered it. The
// unread counter is cached in Redis when a client is configured.
type NotificationService struct {
	db       *gorm.DB
	redis    *redis.Client
	activity *ActivityService
	logger   *zap.Logger
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(db *gorm.DB, redisClient *redis.Client, activity *ActivityService, logger *zap.Logger) *NotificationService {
	return &NotificationService{db: db, redis: redisClient, activity: activity, logger: logger}
}

// Notify creates one notification for the given user. Errors are logged and
// swallowed so callers can fire and forget.
func (s *NotificationService) Notify(userID, content, notificationType string, related models.EntityRef) {
	id, err := utils.GenerateUniqueID(utils.PrefixNotification)
	if err != nil {
		s.logger.Warn("failed to generate notification id", zap.Error(err))
		return
	}

	notification := models.Notification{
		ID:      id,
		UserID:  userID,
		Content: content,
		Type:    notificationType,
		Related: related,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		s.logger.Warn("failed to create notification",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("type", notificationType),
		)
		return
	}
	s.invalidateUnreadCount(userID)
}

// ListForUser returns the user's most recent notifications, newest first,
// capped at 20.
func (s *NotificationService) ListForUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// MarkRead marks one notification as read. Only the recipient may do so.
// Marking an already-read notification is a no-op and still succeeds.
func (s *NotificationService) MarkRead(notificationID, actorID string) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("notification not found")
		}
		return nil, fmt.Errorf("failed to find notification %s: %w", notificationID, err)
	}
	if notification.UserID != actorID {
		return nil, apperrors.Forbidden("cannot modify another user's notification")
	}
	if notification.IsRead {
		return &notification, nil
	}

	if err := s.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark notification %s as read: %w", notificationID, err)
	}
	notification.IsRead = true
	s.invalidateUnreadCount(actorID)
	s.activity.Record(actorID, models.ActionUpdate, models.EntityTypeNotification, notificationID, nil)
	return &notification, nil
}

// UnreadCount returns the number of unread notifications for the user,
// served from Redis when possible.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	key := unreadCountKey(userID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Int64(); err == nil {
			return cached, nil
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("failed to read unread count cache", zap.Error(err))
		}
	}

	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for user %s: %w", userID, err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, count, unreadCountTTL).Err(); err != nil {
			s.logger.Warn("failed to write unread count cache", zap.Error(err))
		}
	}
	return count, nil
}

func (s *NotificationService) invalidateUnreadCount(userID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(context.Background(), unreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate unread count cache", zap.Error(err))
	}
}

func unreadCountKey(userID string) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}
