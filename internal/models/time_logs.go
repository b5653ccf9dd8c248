package models

import (
	"time"
)

// TimeLog records minutes spent on a task by its assignee.
type TimeLog struct {
	ID          string    `gorm:"type:char(13);primaryKey" json:"id"`
	TaskID      string    `gorm:"type:char(13);not null;index" json:"task_id"`
	UserID      string    `gorm:"type:char(13);not null" json:"user_id"`
	Duration    int       `gorm:"not null" json:"duration"`
	Date        time.Time `json:"date"`
	Description string    `gorm:"type:text" json:"description"`

	Task *Task `gorm:"foreignKey:TaskID;references:ID" json:"task,omitempty"`
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}
