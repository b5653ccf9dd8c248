package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task statuses. Any status may be set to any other; there is no enforced
// transition order.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "inprogress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// ValidTaskStatus reports whether status is a known task status.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// ValidTaskPriority reports whether priority is a known task priority.
func ValidTaskPriority(priority string) bool {
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work. A task with a non-nil ParentTaskID is a subtask.
type Task struct {
	ID           string          `gorm:"type:char(13);primaryKey" json:"id"`
	Title        string          `gorm:"type:varchar(250);not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Status       string          `gorm:"type:varchar(50);default:'todo'" json:"status"`
	Priority     string          `gorm:"type:varchar(50);default:'medium'" json:"priority"`
	DueDate      *time.Time      `json:"due_date"`
	StartTime    string          `gorm:"type:varchar(10)" json:"start_time"`
	EndTime      string          `gorm:"type:varchar(10)" json:"end_time"`
	AssigneeID   *string         `gorm:"type:char(13)" json:"assignee_id"`
	CreatorID    string          `gorm:"type:char(13);not null" json:"creator_id"`
	ProjectID    string          `gorm:"type:char(13);not null" json:"project_id"`
	ParentTaskID *string         `gorm:"type:char(13)" json:"parent_task_id"`
	Position     decimal.Decimal `gorm:"type:decimal(20,10);default:'0'" json:"position"`

	Assignee    *User        `gorm:"foreignKey:AssigneeID;references:ID" json:"assignee,omitempty"`
	Creator     *User        `gorm:"foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	Project     *Project     `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	ParentTask  *Task        `gorm:"foreignKey:ParentTaskID;references:ID" json:"parent_task,omitempty"`
	Subtasks    []Task       `gorm:"foreignKey:ParentTaskID;references:ID" json:"subtasks,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:TaskID;references:ID" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskUpdate is used for partial updates of a task. A non-nil empty
// AssigneeID clears the assignee.
type TaskUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
	StartTime   *string    `json:"start_time"`
	EndTime     *string    `json:"end_time"`
}
