package logics

import (
	"errors"
	"fmt"
	"time"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TimeLogService records time spent on tasks.
type TimeLogService struct {
	db       *gorm.DB
	activity *ActivityService
	logger   *zap.Logger
}

// NewTimeLogService creates a new TimeLogService instance.
func NewTimeLogService(db *gorm.DB, activity *ActivityService, logger *zap.Logger) *TimeLogService {
	return &TimeLogService{db: db, activity: activity, logger: logger}
}

// ListForTask returns a task's time logs, most recent date first.
func (s *TimeLogService) ListForTask(taskID string) ([]models.TimeLog, error) {
	var count int64
	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check task %s: %w", taskID, err)
	}
	if count == 0 {
		return nil, apperrors.NotFound("task not found")
	}

	var logs []models.TimeLog
	if err := s.db.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list time logs for task %s: %w", taskID, err)
	}
	return logs, nil
}

// Create records time against a task. When the task has an assignee, only
// that assignee may log time.
func (s *TimeLogService) Create(taskID string, req *models.CreateTimeLogRequest, actor *models.User) (*models.TimeLog, error) {
	var task models.Task
	if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("task not found")
		}
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}
	if task.AssigneeID != nil && *task.AssigneeID != actor.ID {
		return nil, apperrors.Forbidden("only the task assignee can log time")
	}

	id, err := utils.GenerateUniqueID(utils.PrefixTimeLog)
	if err != nil {
		return nil, fmt.Errorf("failed to generate time log id: %w", err)
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	log := models.TimeLog{
		ID:          id,
		TaskID:      taskID,
		UserID:      actor.ID,
		Duration:    req.Duration,
		Date:        date,
		Description: req.Description,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("failed to create time log: %w", err)
	}

	s.activity.Record(actor.ID, models.ActionCreate, models.EntityTypeTimeLog, id, map[string]interface{}{
		"task_id":  taskID,
		"duration": req.Duration,
	})
	return &log, nil
}
