package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Columns searched by the orders listing.
var OrderSearchColumns = []string{
	"order_id",
	"street_address",
	"city",
	"state",
	"zip_code",
	"contact_name",
	"contact_phone",
	"additional_info",
}

// Columns searched by the sign request listing.
var SignRequestSearchColumns = []string{
	"order_id",
	"street_address",
	"city",
	"state",
	"zip_code",
	"contact_name",
	"contact_email",
	"installation_type",
	"property_type",
	"status",
}

// Filter is the compiled predicate shared by listing, counting and
// aggregation queries. Cutoff carries the two-year visibility rule:
// orders are visible when the installation date is unset or not older
// than the cutoff, regardless of any other predicate.
type Filter struct {
	Cutoff time.Time

	OfficeID         *snowflake.ID
	AgentID          *snowflake.ID
	VendorID         *snowflake.ID
	Status           string
	InstallationType string

	// Search is matched case-insensitively as a substring against
	// every column in SearchColumns; the per-column conditions are
	// OR-ed together and AND-ed with the rest of the filter.
	Search        string
	SearchColumns []string

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// EligibleOnly keeps only orders whose completion date is set or
	// whose installation type is REMOVAL.
	EligibleOnly bool
}
