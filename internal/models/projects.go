package models

import (
	"time"
)

// Project statuses.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// ValidProjectStatus reports whether status is a known project status.
func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

type Project struct {
	ID          string     `gorm:"type:char(13);primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(250);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	TeamID      string     `gorm:"type:char(13);not null" json:"team_id"`
	Status      string     `gorm:"type:varchar(50);default:'planning'" json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`

	Team *Team `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
