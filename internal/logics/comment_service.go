package logics

import (
	"errors"
	"fmt"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService manages the one-level comment threads on tasks.
type CommentService struct {
	db            *gorm.DB
	activity      *ActivityService
	notifications *NotificationService
	logger        *zap.Logger
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(db *gorm.DB, activity *ActivityService, notifications *NotificationService, logger *zap.Logger) *CommentService {
	return &CommentService{db: db, activity: activity, notifications: notifications, logger: logger}
}

// ListForTask returns the task's root comments newest first, each with its
// replies oldest first.
func (s *CommentService) ListForTask(taskID string) ([]models.CommentWithReplies, error) {
	var taskCount int64
	if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Count(&taskCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check task %s: %w", taskID, err)
	}
	if taskCount == 0 {
		return nil, apperrors.NotFound("task not found")
	}

	var roots []models.Comment
	if err := s.db.
		Preload("User").
		Preload("Attachments").
		Where("task_id = ? AND parent_comment_id IS NULL", taskID).
		Order("created_at DESC").
		Find(&roots).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments for task %s: %w", taskID, err)
	}

	threads := make([]models.CommentWithReplies, 0, len(roots))
	for _, root := range roots {
		var replies []models.Comment
		if err := s.db.
			Preload("User").
			Preload("Attachments").
			Where("parent_comment_id = ?", root.ID).
			Order("created_at ASC").
			Find(&replies).Error; err != nil {
			return nil, fmt.Errorf("failed to list replies of comment %s: %w", root.ID, err)
		}
		threads = append(threads, models.CommentWithReplies{Comment: root, Replies: replies})
	}
	return threads, nil
}

// GetByID returns one comment with its author preloaded.
func (s *CommentService) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment not found")
		}
		return nil, fmt.Errorf("failed to find comment %s: %w", id, err)
	}
	return &comment, nil
}

// Create adds a comment or reply to a task. The task's assignee, when
// distinct from the author, is notified.
func (s *CommentService) Create(taskID string, req *models.CreateCommentRequest, author *models.User) (*models.Comment, error) {
	var task models.Task
	if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("task not found")
		}
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}

	if req.ParentCommentID != nil {
		var parentCount int64
		if err := s.db.Model(&models.Comment{}).
			Where("id = ? AND task_id = ?", *req.ParentCommentID, taskID).
			Count(&parentCount).Error; err != nil {
			return nil, fmt.Errorf("failed to check parent comment %s: %w", *req.ParentCommentID, err)
		}
		if parentCount == 0 {
			return nil, apperrors.NotFound("parent comment not found")
		}
	}

	id, err := utils.GenerateUniqueID(utils.PrefixComment)
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment id: %w", err)
	}

	comment := models.Comment{
		ID:              id,
		Text:            req.Text,
		UserID:          author.ID,
		TaskID:          taskID,
		ParentCommentID: req.ParentCommentID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.activity.Record(author.ID, models.ActionCreate, models.EntityTypeComment, comment.ID, map[string]interface{}{
		"task_id": taskID,
	})
	if task.AssigneeID != nil && *task.AssigneeID != author.ID {
		s.notifications.Notify(*task.AssigneeID,
			fmt.Sprintf("New comment on task: %s", task.Title),
			models.NotificationComment,
			models.EntityRef{Kind: models.EntityComment, ID: comment.ID},
		)
	}

	return s.GetByID(comment.ID)
}

// Update rewrites a comment's text. Only the author may do so.
func (s *CommentService) Update(id, text, actorID string) (*models.Comment, error) {
	comment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, apperrors.Forbidden("only the author can edit a comment")
	}

	if err := s.db.Model(comment).Update("text", text).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment %s: %w", id, err)
	}

	s.activity.Record(actorID, models.ActionUpdate, models.EntityTypeComment, id, nil)
	return s.GetByID(id)
}

// Delete removes a comment. Deleting a root comment removes its replies and
// the attachment records of the whole thread in one transaction.
func (s *CommentService) Delete(id, actorID string) error {
	comment, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return apperrors.Forbidden("only the author can delete a comment")
	}

	ids := []string{id}
	if comment.ParentCommentID == nil {
		var replyIDs []string
		if err := s.db.Model(&models.Comment{}).
			Where("parent_comment_id = ?", id).
			Pluck("id", &replyIDs).Error; err != nil {
			return fmt.Errorf("failed to list replies of comment %s: %w", id, err)
		}
		ids = append(ids, replyIDs...)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Where("comment_id IN ?", ids).Delete(&models.Attachment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete attachments of comment %s: %w", id, err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete comment %s: %w", id, err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit comment deletion: %w", err)
	}

	s.activity.Record(actorID, models.ActionDelete, models.EntityTypeComment, id, nil)
	return nil
}
