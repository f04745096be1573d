package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Reorder struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	ReorderID        string       `gorm:"column:reorder_id;not null;uniqueIndex" json:"reorderId"`
	OriginalOrderID  snowflake.ID `gorm:"not null;index" json:"originalOrderId"`
	InstallationType string       `gorm:"not null" json:"installationType"`
	ZipCode          string       `gorm:"not null" json:"zipCode"`
	AdditionalInfo   string       `gorm:"type:text" json:"additionalInfo,omitempty"`
	ListingAgentID   snowflake.ID `gorm:"not null;index" json:"listingAgentId"`
	Status           string       `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// NewReorderID builds the human-facing reorder number from a creation
// timestamp, e.g. RO-1700000000000.
func NewReorderID(t time.Time) string {
	return fmt.Sprintf("RO-%d", t.UnixMilli())
}
