package models

import (
	"time"
)

// Team is a named group of users run by a manager. The manager is always a
// member as well.
type Team struct {
	ID          string `gorm:"type:char(13);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(250);not null" json:"name"`
	Description string `gorm:"type:varchar(250)" json:"description"`
	ManagerID   string `gorm:"type:char(13);not null" json:"manager_id"`

	Manager *User   `gorm:"foreignKey:ManagerID;references:ID" json:"manager,omitempty"`
	Members []*User `gorm:"many2many:team_members;foreignKey:ID;joinForeignKey:TeamID;References:ID;joinReferences:UserID" json:"members,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember is the join row between users and teams.
type TeamMember struct {
	TeamID string `gorm:"type:char(13);primaryKey" json:"team_id"`
	UserID string `gorm:"type:char(13);primaryKey" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
