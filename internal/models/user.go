package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleModerator  UserRole = "moderator"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super-admin"
)

// NormalizeRole maps an arbitrary role string to a known role.
// Comparison is case-insensitive; anything unknown falls back to student.
func NormalizeRole(raw string) UserRole {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleSuperAdmin), "superadmin", "super_admin":
		return RoleSuperAdmin
	case string(RoleAdmin), "administrator":
		return RoleAdmin
	case string(RoleModerator), "mod":
		return RoleModerator
	case string(RoleStudent), "user", "learner":
		return RoleStudent
	default:
		return RoleStudent
	}
}

// IsModerator reports whether the role carries moderator privileges.
// Admin and super-admin imply moderator.
func (r UserRole) IsModerator() bool {
	return r == RoleModerator || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin reports whether the role carries admin privileges.
// Super-admin implies admin.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID    uint     `json:"id" gorm:"primaryKey"`
	Name  string   `json:"name" gorm:"not null;size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;size:20;default:student"`

	PhotoURL *string `json:"photo_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
