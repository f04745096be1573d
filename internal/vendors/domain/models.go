package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Vendor struct {
	ID           snowflake.ID                `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"not null" json:"name"`
	ContactName  string                      `json:"contactName,omitempty"`
	Email        string                      `json:"email,omitempty"`
	Phone        string                      `json:"phone,omitempty"`
	ServiceAreas datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"serviceAreas"`
	IsActive     bool                        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// ServesZip reports whether the vendor covers the given zip code.
func (v Vendor) ServesZip(zip string) bool {
	for _, area := range v.ServiceAreas {
		if area == zip {
			return true
		}
	}
	return false
}
