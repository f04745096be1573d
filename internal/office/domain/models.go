package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Office struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null" json:"name"`
	StreetAddress string       `json:"streetAddress,omitempty"`
	City          string       `json:"city,omitempty"`
	State         string       `json:"state,omitempty"`
	ZipCode       string       `json:"zipCode,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Email         string       `json:"email,omitempty"`
	IsActive      bool         `gorm:"not null;default:true" json:"isActive"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}
