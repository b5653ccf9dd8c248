package logics

import (
	"encoding/json"
	"fmt"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService writes and reads the append-only audit trail. Writes are
// best-effort: a failed audit entry never fails the primary mutation.
type ActivityService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewActivityService creates a new ActivityService instance.
func NewActivityService(db *gorm.DB, logger *zap.Logger) *ActivityService {
	return &ActivityService{db: db, logger: logger}
}

// Record appends one audit entry. Errors are logged and swallowed.
func (s *ActivityService) Record(userID, action, entityType, entityID string, metadata map[string]interface{}) {
	id, err := utils.GenerateUniqueID(utils.PrefixActivityLog)
	if err != nil {
		s.logger.Warn("failed to generate activity log id", zap.Error(err))
		return
	}

	entry := models.ActivityLog{
		ID:         id,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			s.logger.Warn("failed to marshal activity metadata", zap.Error(err))
		} else {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		s.logger.Warn("failed to write activity log",
			zap.Error(err),
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
		)
	}
}

// ListAll returns the most recent entries across all users, newest first.
func (s *ActivityService) ListAll(limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := s.db.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}

// ListByUser returns the most recent entries for one user, newest first.
func (s *ActivityService) ListByUser(userID string, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity logs for user %s: %w", userID, err)
	}
	return logs, nil
}
