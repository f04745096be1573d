package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CCEmail is an additional notification recipient registered for an
// office, optionally narrowed to a single agent. Records are never
// hard-deleted; removal flips IsActive off so the audit trail survives.
type CCEmail struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	Email      string        `gorm:"not null;index" json:"email"`
	OfficeID   snowflake.ID  `gorm:"not null;index" json:"officeId"`
	AgentID    *snowflake.ID `gorm:"index" json:"agentId,omitempty"`
	EnteredBy  snowflake.ID  `gorm:"not null" json:"enteredBy"`
	ModifiedBy *snowflake.ID `json:"modifiedBy,omitempty"`
	IsActive   bool          `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}
