package logics

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "taskhub-server/pkg/errors"

	"taskhub-server/internal/models"
	"taskhub-server/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService manages tasks and subtasks. Mutations are restricted to the
// task creator, the current assignee, the managing team's manager, and
// admins; deletion additionally excludes the assignee.
type TaskService struct {
	db            *gorm.DB
	activity      *ActivityService
	notifications *NotificationService
	logger        *zap.Logger
}

// NewTaskService creates a new TaskService instance.
func NewTaskService(db *gorm.DB, activity *ActivityService, notifications *NotificationService, logger *zap.Logger) *TaskService {
	return &TaskService{db: db, activity: activity, notifications: notifications, logger: logger}
}

// List returns root tasks (no parent), newest first, optionally filtered by
// project.
func (s *TaskService) List(projectID string) ([]models.Task, error) {
	query := s.db.
		Preload("Assignee").
		Preload("Project").
		Where("parent_task_id IS NULL").
		Order("created_at DESC")
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetByID returns one task with its assignee, project, attachments and
// direct subtasks preloaded.
func (s *TaskService) GetByID(id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.
		Preload("Assignee").
		Preload("Creator").
		Preload("Project").
		Preload("Attachments").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC").Preload("Assignee")
		}).
		First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("task not found")
		}
		return nil, fmt.Errorf("failed to find task %s: %w", id, err)
	}
	return &task, nil
}

// ListSubtasks returns the direct children of a task in board order.
func (s *TaskService) ListSubtasks(parentID string) ([]models.Task, error) {
	if _, err := s.GetByID(parentID); err != nil {
		return nil, err
	}

	var subtasks []models.Task
	if err := s.db.
		Preload("Assignee").
		Where("parent_task_id = ?", parentID).
		Order("position ASC, created_at ASC").
		Find(&subtasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list subtasks of %s: %w", parentID, err)
	}
	return subtasks, nil
}

// Create creates a task or subtask. The assignee, when set and distinct
// from the creator, is notified.
func (s *TaskService) Create(req *models.CreateTaskRequest, creator *models.User) (*models.Task, error) {
	var projectCount int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&projectCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check project %s: %w", req.ProjectID, err)
	}
	if projectCount == 0 {
		return nil, apperrors.NotFound("project not found")
	}

	if req.ParentTaskID != nil {
		var parentCount int64
		if err := s.db.Model(&models.Task{}).Where("id = ?", *req.ParentTaskID).Count(&parentCount).Error; err != nil {
			return nil, fmt.Errorf("failed to check parent task %s: %w", *req.ParentTaskID, err)
		}
		if parentCount == 0 {
			return nil, apperrors.NotFound("parent task not found")
		}
	}

	if req.AssigneeID != nil && *req.AssigneeID != "" {
		var assigneeCount int64
		if err := s.db.Model(&models.User{}).Where("id = ?", *req.AssigneeID).Count(&assigneeCount).Error; err != nil {
			return nil, fmt.Errorf("failed to check assignee %s: %w", *req.AssigneeID, err)
		}
		if assigneeCount == 0 {
			return nil, apperrors.NotFound("assignee not found")
		}
	}

	id, err := utils.GenerateUniqueID(utils.PrefixTask)
	if err != nil {
		return nil, fmt.Errorf("failed to generate task id: %w", err)
	}

	task := models.Task{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		CreatorID:    creator.ID,
		ProjectID:    req.ProjectID,
		ParentTaskID: req.ParentTaskID,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		task.AssigneeID = req.AssigneeID
	}

	position, err := s.nextPosition(req.ProjectID, req.ParentTaskID, task.Status)
	if err != nil {
		return nil, err
	}
	task.Position = position

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activity.Record(creator.ID, models.ActionCreate, models.EntityTypeTask, task.ID, map[string]interface{}{
		"title": task.Title,
	})
	if task.AssigneeID != nil && *task.AssigneeID != creator.ID {
		s.notifications.Notify(*task.AssigneeID,
			fmt.Sprintf("You have been assigned to task: %s", task.Title),
			models.NotificationTaskAssigned,
			models.EntityRef{Kind: models.EntityTask, ID: task.ID},
		)
	}

	return s.GetByID(task.ID)
}

// Update applies a partial update. A status change is recorded in the audit
// trail with old and new values; reassignment notifies the new assignee.
func (s *TaskService) Update(id string, update *models.TaskUpdate, actor *models.User) (*models.Task, error) {
	task, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(task, actor, true); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	metadata := map[string]interface{}{}

	if update.Title != nil {
		changes["title"] = *update.Title
	}
	if update.Description != nil {
		changes["description"] = *update.Description
	}
	if update.Status != nil {
		if !models.ValidTaskStatus(*update.Status) {
			return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid task status: %s", *update.Status))
		}
		if *update.Status != task.Status {
			changes["status"] = *update.Status
			metadata["field"] = "status"
			metadata["old_value"] = task.Status
			metadata["new_value"] = *update.Status
		}
	}
	if update.Priority != nil {
		if !models.ValidTaskPriority(*update.Priority) {
			return nil, apperrors.InvalidArgument(fmt.Sprintf("invalid task priority: %s", *update.Priority))
		}
		changes["priority"] = *update.Priority
	}
	if update.DueDate != nil {
		changes["due_date"] = *update.DueDate
	}
	if update.StartTime != nil {
		changes["start_time"] = *update.StartTime
	}
	if update.EndTime != nil {
		changes["end_time"] = *update.EndTime
	}

	var notifyAssignee string
	if update.AssigneeID != nil {
		if *update.AssigneeID == "" {
			changes["assignee_id"] = nil
		} else {
			var count int64
			if err := s.db.Model(&models.User{}).Where("id = ?", *update.AssigneeID).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("failed to check assignee %s: %w", *update.AssigneeID, err)
			}
			if count == 0 {
				return nil, apperrors.NotFound("assignee not found")
			}
			changes["assignee_id"] = *update.AssigneeID
			previousAssignee := ""
			if task.AssigneeID != nil {
				previousAssignee = *task.AssigneeID
			}
			if *update.AssigneeID != previousAssignee && *update.AssigneeID != actor.ID {
				notifyAssignee = *update.AssigneeID
			}
		}
	}

	if len(changes) == 0 {
		return task, nil
	}

	if err := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}

	if len(metadata) == 0 {
		metadata = nil
	}
	s.activity.Record(actor.ID, models.ActionUpdate, models.EntityTypeTask, id, metadata)
	if notifyAssignee != "" {
		s.notifications.Notify(notifyAssignee,
			fmt.Sprintf("You have been assigned to task: %s", task.Title),
			models.NotificationTaskAssigned,
			models.EntityRef{Kind: models.EntityTask, ID: id},
		)
	}

	return s.GetByID(id)
}

// Delete removes a task, its direct subtasks, and the attachment records of
// all removed tasks in one transaction. Grandchildren are left in place.
func (s *TaskService) Delete(id string, actor *models.User) error {
	task, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(task, actor, false); err != nil {
		return err
	}

	ids := []string{id}
	for _, subtask := range task.Subtasks {
		ids = append(ids, subtask.ID)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := tx.Where("task_id IN ?", ids).Delete(&models.Attachment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete attachments of task %s: %w", id, err)
	}
	if err := tx.Where("parent_task_id = ?", id).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete subtasks of %s: %w", id, err)
	}
	if err := tx.Delete(&models.Task{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit task deletion: %w", err)
	}

	s.activity.Record(actor.ID, models.ActionDelete, models.EntityTypeTask, id, map[string]interface{}{
		"title": task.Title,
	})
	return nil
}

// authorizeMutation checks whether the actor may mutate the task. The
// assignee may update but not delete.
func (s *TaskService) authorizeMutation(task *models.Task, actor *models.User, allowAssignee bool) error {
	if actor.Role == models.RoleAdmin || task.CreatorID == actor.ID {
		return nil
	}
	if allowAssignee && task.AssigneeID != nil && *task.AssigneeID == actor.ID {
		return nil
	}
	var team models.Team
	if err := s.db.First(&team, "id = ?", task.Project.TeamID).Error; err == nil && team.ManagerID == actor.ID {
		return nil
	}
	return apperrors.Forbidden("not allowed to modify this task")
}

// nextPosition returns a board position one past the current maximum within
// the task's sibling group.
func (s *TaskService) nextPosition(projectID string, parentTaskID *string, status string) (decimal.Decimal, error) {
	query := s.db.Model(&models.Task{}).Where("project_id = ? AND status = ?", projectID, status)
	if parentTaskID == nil {
		query = query.Where("parent_task_id IS NULL")
	} else {
		query = query.Where("parent_task_id = ?", *parentTaskID)
	}

	var max sql.NullString
	if err := query.Select("MAX(position)").Scan(&max).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute task position: %w", err)
	}
	if !max.Valid || max.String == "" {
		return decimal.NewFromInt(1), nil
	}
	current, err := decimal.NewFromString(max.String)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse task position %q: %w", max.String, err)
	}
	return current.Add(decimal.NewFromInt(1)), nil
}
