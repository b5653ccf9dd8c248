package models

import (
	"time"
)

// Request bodies. Validation tags are enforced by the server's
// go-playground validator before any store access.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Language string `json:"language" validate:"omitempty,max=10"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateTaskRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status" validate:"omitempty,oneof=todo inprogress review done"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate      *time.Time `json:"due_date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	AssigneeID   *string    `json:"assignee_id"`
	ProjectID    string     `json:"project_id" validate:"required"`
	ParentTaskID *string    `json:"parent_task_id"`
}

type CreateCommentRequest struct {
	Text            string  `json:"text" validate:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id" validate:"required"`
}

type AddTeamMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	TeamID      string     `json:"team_id" validate:"required"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planning active completed archived"`
}

type CreateTimeLogRequest struct {
	Duration    int        `json:"duration" validate:"required,min=1"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
