package models

import (
	"time"
)

// Notification types.
const (
	NotificationTaskAssigned    = "task_assigned"
	NotificationComment         = "comment"
	NotificationDueDateReminder = "due_date_reminder"
	NotificationProjectUpdate   = "project_update"
)

// EntityKind tags the entity a notification refers to. It replaces the
// dynamic reference-plus-model-name pair of the original schema so consumers
// can switch on a closed set.
type EntityKind string

const (
	EntityTask    EntityKind = "task"
	EntityProject EntityKind = "project"
	EntityComment EntityKind = "comment"
)

// Valid reports whether the kind is a member of the closed set.
func (k EntityKind) Valid() bool {
	switch k {
	case EntityTask, EntityProject, EntityComment:
		return true
	}
	return false
}

// EntityRef is a tagged reference to a task, project, or comment.
type EntityRef struct {
	Kind EntityKind `gorm:"type:varchar(50)" json:"kind"`
	ID   string     `gorm:"type:char(13)" json:"id"`
}

// Notification is a per-user inbox entry, written synchronously as a side
// effect of task assignment and comment creation.
type Notification struct {
	ID      string    `gorm:"type:char(13);primaryKey" json:"id"`
	UserID  string    `gorm:"type:char(13);not null;index" json:"user_id"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Type    string    `gorm:"type:varchar(50);not null" json:"type"`
	IsRead  bool      `gorm:"default:false" json:"is_read"`
	Related EntityRef `gorm:"embedded;embeddedPrefix:related_" json:"related"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
