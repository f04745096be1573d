package domain

import (
	"context"
	"errors"
)

type CreateReorderRequest struct {
	OriginalOrderID  string `json:"originalOrderId" binding:"required"`
	InstallationType string `json:"installationType" binding:"required"`
	ZipCode          string `json:"zipCode" binding:"required"`
	AdditionalInfo   string `json:"additionalInfo"`
	ListingAgentID   string `json:"listingAgentId" binding:"required"`
}

type UpdateReorderRequest struct {
	InstallationType *string `json:"installationType"`
	ZipCode          *string `json:"zipCode"`
	AdditionalInfo   *string `json:"additionalInfo"`
	Status           *string `json:"status"`
}

type Service interface {
	// ListByOrder returns the reorders of one original order, newest
	// first.
	ListByOrder(ctx context.Context, orderID string) ([]Reorder, error)

	// Create records a reorder against an eligible original order.
	// Ineligible or inaccessible originals leave no trace in the
	// store.
	Create(ctx context.Context, req CreateReorderRequest) (Reorder, error)

	Update(ctx context.Context, id string, req UpdateReorderRequest) (Reorder, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrInvalidID               = errors.New("invalid_id")
	ErrInvalidStatus           = errors.New("invalid_status")
	ErrInvalidInstallationType = errors.New("invalid_installation_type")
	ErrOriginalNotFound        = errors.New("original_order_not_found")
	ErrNotEligible             = errors.New("not_eligible_for_reorder")
	ErrNotFound                = errors.New("not_found")
	ErrAccessDenied            = errors.New("access_denied")
)
