package models

import (
	"time"

	"taskhub-server/pkg/errors"

	"gorm.io/gorm"
)

// Attachment is file metadata for a blob stored on disk. Every attachment
// belongs to exactly one task or one comment, never both and never neither.
type Attachment struct {
	ID           string  `gorm:"type:char(13);primaryKey" json:"id"`
	Filename     string  `gorm:"type:varchar(250);not null;unique" json:"filename"`
	OriginalName string  `gorm:"type:varchar(250);not null" json:"original_name"`
	Mimetype     string  `gorm:"type:varchar(250)" json:"mimetype"`
	Size         int64   `gorm:"not null" json:"size"`
	Path         string  `gorm:"type:varchar(500);not null" json:"path"`
	URL          string  `gorm:"type:varchar(500);not null" json:"url"`
	UploadedByID string  `gorm:"type:char(13);not null" json:"uploaded_by_id"`
	TaskID       *string `gorm:"type:char(13)" json:"task_id"`
	CommentID    *string `gorm:"type:char(13)" json:"comment_id"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID;references:ID" json:"uploaded_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// Validate enforces the exactly-one-owner rule.
func (a *Attachment) Validate() error {
	if a.TaskID == nil && a.CommentID == nil {
		return errors.InvalidArgument("attachment must be associated with either a task or a comment")
	}
	if a.TaskID != nil && a.CommentID != nil {
		return errors.InvalidArgument("attachment cannot be associated with both a task and a comment")
	}
	return nil
}

// BeforeSave rejects invalid owner references before any write.
func (a *Attachment) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}
