package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Order statuses.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Installation types.
const (
	TypeInstallation = "INSTALLATION"
	TypeRemoval      = "REMOVAL"
	TypeRepair       = "REPAIR"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func IsValidInstallationType(installationType string) bool {
	switch installationType {
	case TypeInstallation, TypeRemoval, TypeRepair:
		return true
	}
	return false
}

type Order struct {
	ID                  snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrderID             string        `gorm:"column:order_id;not null;uniqueIndex" json:"orderId"`
	OfficeID            snowflake.ID  `gorm:"not null;index" json:"officeId"`
	AgentID             snowflake.ID  `gorm:"not null;index" json:"agentId"`
	VendorID            *snowflake.ID `gorm:"index" json:"vendorId,omitempty"`
	InstallationType    string        `gorm:"not null" json:"installationType"`
	PropertyType        string        `gorm:"not null" json:"propertyType"`
	StreetAddress       string        `gorm:"not null" json:"streetAddress"`
	City                string        `gorm:"not null" json:"city"`
	State               string        `gorm:"not null" json:"state"`
	ZipCode             string        `gorm:"not null" json:"zipCode"`
	ContactName         string        `json:"contactName,omitempty"`
	ContactPhone        string        `json:"contactPhone,omitempty"`
	ContactEmail        string        `json:"contactEmail,omitempty"`
	ListingDate         *time.Time    `json:"listingDate,omitempty"`
	ExpirationDate      *time.Time    `json:"expirationDate,omitempty"`
	InstallationDate    *time.Time    `json:"installationDate,omitempty"`
	CompletionDate      *time.Time    `json:"completionDate,omitempty"`
	Directions          string        `gorm:"type:text" json:"directions,omitempty"`
	AdditionalInfo      string        `gorm:"type:text" json:"additionalInfo,omitempty"`
	UnderwaterSprinkler bool          `gorm:"not null;default:false" json:"underwaterSprinkler"`
	InvisibleDogFence   bool          `gorm:"not null;default:false" json:"invisibleDogFence"`
	Status              string        `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt           time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt           time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// NewOrderID builds the human-facing order number from a creation
// timestamp, e.g. SO-1700000000000.
func NewOrderID(t time.Time) string {
	return fmt.Sprintf("SO-%d", t.UnixMilli())
}

// Address renders the single-line display address. Empty components
// are kept in place; only the surrounding whitespace is trimmed.
func (o Order) Address() string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s, %s %s", o.StreetAddress, o.City, o.State, o.ZipCode))
}

// EligibleForReorder is the authoritative eligibility rule enforced
// when a reorder is created.
func (o Order) EligibleForReorder() bool {
	return o.Status == StatusCompleted || o.InstallationType == TypeRemoval
}

// CanOrder is the display-oriented eligibility used by sign request
// listings and statistics. It keys off the completion date rather than
// the status, so the two rules can disagree for orders marked
// COMPLETED without a completion date recorded.
func (o Order) CanOrder() bool {
	return o.CompletionDate != nil || o.InstallationType == TypeRemoval
}
