package domain

import (
	"context"
	"errors"
	"time"

	"github.com/signdesk/signdesk/pkg/db/pagination"
)

type ListOrdersRequest struct {
	Page             int
	Limit            int
	Search           string
	OfficeID         string
	AgentID          string
	InstallationType string
	Status           string
}

// PageMeta is the nested pagination block of the orders listing. The
// sign request listing keeps the flat page fields.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func PageMetaFrom(info pagination.PageInfo) PageMeta {
	return PageMeta{
		Page:  info.Page,
		Limit: info.Limit,
		Total: info.Total,
		Pages: info.TotalPages,
	}
}

type ListOrdersResponse struct {
	Orders     []OrderView `json:"orders"`
	Pagination PageMeta    `json:"pagination"`
}

type ListSignRequestsRequest struct {
	Page     int
	Limit    int
	Search   string
	OfficeID string
	AgentID  string
}

type ListSignRequestsResponse struct {
	pagination.PageInfo
	Orders []OrderView `json:"orders"`
}

type StatsRequest struct {
	OfficeID string
	AgentID  string
}

type Stats struct {
	TotalOrders         int64      `json:"totalOrders"`
	EligibleForOrdering int64      `json:"eligibleForOrdering"`
	Breakdown           []StatsRow `json:"breakdown"`
}

type CreateOrderRequest struct {
	OfficeID            string     `json:"officeId" binding:"required"`
	AgentID             string     `json:"agentId" binding:"required"`
	VendorID            string     `json:"vendorId"`
	InstallationType    string     `json:"installationType" binding:"required"`
	PropertyType        string     `json:"propertyType" binding:"required"`
	StreetAddress       string     `json:"streetAddress" binding:"required"`
	City                string     `json:"city" binding:"required"`
	State               string     `json:"state" binding:"required"`
	ZipCode             string     `json:"zipCode" binding:"required"`
	ContactName         string     `json:"contactName"`
	ContactPhone        string     `json:"contactPhone"`
	ContactEmail        string     `json:"contactEmail"`
	ListingDate         *time.Time `json:"listingDate"`
	ExpirationDate      *time.Time `json:"expirationDate"`
	InstallationDate    *time.Time `json:"installationDate"`
	CompletionDate      *time.Time `json:"completionDate"`
	Directions          string     `json:"directions"`
	AdditionalInfo      string     `json:"additionalInfo"`
	UnderwaterSprinkler bool       `json:"underwaterSprinkler"`
	InvisibleDogFence   bool       `json:"invisibleDogFence"`
}

type UpdateOrderRequest struct {
	VendorID            *string    `json:"vendorId"`
	InstallationType    *string    `json:"installationType"`
	PropertyType        *string    `json:"propertyType"`
	StreetAddress       *string    `json:"streetAddress"`
	City                *string    `json:"city"`
	State               *string    `json:"state"`
	ZipCode             *string    `json:"zipCode"`
	ContactName         *string    `json:"contactName"`
	ContactPhone        *string    `json:"contactPhone"`
	ContactEmail        *string    `json:"contactEmail"`
	ListingDate         *time.Time `json:"listingDate"`
	ExpirationDate      *time.Time `json:"expirationDate"`
	InstallationDate    *time.Time `json:"installationDate"`
	CompletionDate      *time.Time `json:"completionDate"`
	Directions          *string    `json:"directions"`
	AdditionalInfo      *string    `json:"additionalInfo"`
	UnderwaterSprinkler *bool      `json:"underwaterSprinkler"`
	InvisibleDogFence   *bool      `json:"invisibleDogFence"`
	Status              *string    `json:"status"`
}

type Service interface {
	// List returns orders visible to the caller, newest first. Agent
	// and office-admin callers are scoped to their own records no
	// matter what filters they request.
	List(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error)

	// ListSignRequests is the office-centric listing backing the sign
	// request screen. The office filter is mandatory.
	ListSignRequests(ctx context.Context, req ListSignRequestsRequest) (ListSignRequestsResponse, error)

	// Stats aggregates the visible orders of one office by
	// installation type and status.
	Stats(ctx context.Context, req StatsRequest) (Stats, error)

	GetByID(ctx context.Context, id string) (OrderView, error)
	Create(ctx context.Context, req CreateOrderRequest) (OrderView, error)
	Update(ctx context.Context, id string, req UpdateOrderRequest) (OrderView, error)
	Delete(ctx context.Context, id string) error

	// CheckReorderEligibility reports whether the order may be
	// reordered.
	CheckReorderEligibility(ctx context.Context, id string) (bool, error)
}

var (
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrOfficeRequired          = errors.New("office_required")
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidStatus           = errors.New("invalid_status")
	ErrInvalidInstallationType = errors.New("invalid_installation_type")
	ErrNotFound                = errors.New("not_found")
	ErrAccessDenied            = errors.New("access_denied")
)
