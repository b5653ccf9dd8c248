package models

import (
	"time"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           string  `gorm:"type:char(13);primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(250);not null" json:"name"`
	Email        string  `gorm:"type:varchar(250);not null;unique" json:"email"`
	PasswordHash string  `gorm:"type:varchar(100);not null" json:"-"`
	Role         string  `gorm:"type:varchar(50);default:'member'" json:"role"`
	AvatarURL    string  `gorm:"type:varchar(250)" json:"avatar_url"`
	Language     string  `gorm:"type:varchar(10);default:'en'" json:"language"`
	TeamID       *string `gorm:"type:char(13)" json:"team_id"`

	Team *Team `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserUpdate is used for partial self-service profile updates.
type UserUpdate struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Language  *string `json:"language"`
	Password  *string `json:"password"`
}

// AdminUserUpdate is used for admin-side updates of any user.
type AdminUserUpdate struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Language  *string `json:"language"`
	Role      *string `json:"role"`
	TeamID    *string `json:"team_id"`
}
