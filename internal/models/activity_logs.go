package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// ActivityLog entity types.
const (
	EntityTypeUser         = "User"
	EntityTypeTeam         = "Team"
	EntityTypeProject      = "Project"
	EntityTypeTask         = "Task"
	EntityTypeComment      = "Comment"
	EntityTypeTimeLog      = "TimeLog"
	EntityTypeAttachment   = "Attachment"
	EntityTypeNotification = "Notification"
)

// ActivityLog is an append-only audit entry, one per mutating action.
type ActivityLog struct {
	ID         string         `gorm:"type:char(13);primaryKey" json:"id"`
	UserID     string         `gorm:"type:char(13);not null;index" json:"user_id"`
	Action     string         `gorm:"type:varchar(50);not null" json:"action"`
	EntityType string         `gorm:"type:varchar(50);not null" json:"entity_type"`
	EntityID   string         `gorm:"type:char(13)" json:"entity_id"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
