package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Roles recognized by the application. IT_ADMIN and SIGN_ADMIN see all
// data, ADMIN_AGENT is scoped to its office and AGENT to its own records.
const (
	RoleITAdmin    = "IT_ADMIN"
	RoleSignAdmin  = "SIGN_ADMIN"
	RoleAdminAgent = "ADMIN_AGENT"
	RoleAgent      = "AGENT"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleITAdmin, RoleSignAdmin, RoleAdminAgent, RoleAgent:
		return true
	}
	return false
}

// IsAdminRole reports whether the role bypasses office and agent scoping.
func IsAdminRole(role string) bool {
	return role == RoleITAdmin || role == RoleSignAdmin
}

type User struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Email        string        `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string        `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string        `gorm:"not null" json:"firstName"`
	LastName     string        `gorm:"not null" json:"lastName"`
	Phone        string        `json:"phone,omitempty"`
	Role         string        `gorm:"not null" json:"role"`
	OfficeID     *snowflake.ID `gorm:"index" json:"officeId,omitempty"`
	IsActive     bool          `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}
