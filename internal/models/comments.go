package models

import (
	"time"
)

// Comment is attached to a task. A comment with a non-nil ParentCommentID is
// a reply.
type Comment struct {
	ID              string  `gorm:"type:char(13);primaryKey" json:"id"`
	Text            string  `gorm:"type:text;not null" json:"text"`
	UserID          string  `gorm:"type:char(13);not null" json:"user_id"`
	TaskID          string  `gorm:"type:char(13);not null" json:"task_id"`
	ParentCommentID *string `gorm:"type:char(13)" json:"parent_comment_id"`

	User        *User        `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Task        *Task        `gorm:"foreignKey:TaskID;references:ID" json:"task,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:CommentID;references:ID" json:"attachments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentWithReplies is the list-endpoint shape: a root comment annotated
// with its direct replies.
type CommentWithReplies struct {
	Comment
	Replies []Comment `json:"replies"`
}
