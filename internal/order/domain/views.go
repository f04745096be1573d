package domain

import (
	"github.com/bwmarrin/snowflake"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
)

type OfficeRef struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

type AgentRef struct {
	ID        snowflake.ID `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
}

type VendorRef struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

// OrderView is the API representation of an order, decorated with the
// display address, the reorder eligibility flag and summaries of the
// related records.
type OrderView struct {
	Order

	Address  string `json:"address"`
	CanOrder bool   `json:"canOrder"`

	Office   *OfficeRef              `json:"office,omitempty"`
	Agent    *AgentRef               `json:"agent,omitempty"`
	Vendor   *VendorRef              `json:"vendor,omitempty"`
	Reorders []reorderdomain.Reorder `json:"reorders,omitempty"`
}
