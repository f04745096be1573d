package domain

import (
	"context"
	"errors"
)

type CreateVendorRequest struct {
	Name         string   `json:"name" binding:"required"`
	ContactName  string   `json:"contactName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	ServiceAreas []string `json:"serviceAreas"`
}

type UpdateVendorRequest struct {
	Name         *string   `json:"name"`
	ContactName  *string   `json:"contactName"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	ServiceAreas *[]string `json:"serviceAreas"`
	IsActive     *bool     `json:"isActive"`
}

type ListVendorsRequest struct {
	ZipCode string
}

type Service interface {
	Create(ctx context.Context, req CreateVendorRequest) (Vendor, error)
	Update(ctx context.Context, id string, req UpdateVendorRequest) (Vendor, error)
	List(ctx context.Context, req ListVendorsRequest) ([]Vendor, error)
	// FindByZip returns the first active vendor whose service areas
	// include the zip code, or nil when none match.
	FindByZip(ctx context.Context, zip string) (*Vendor, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
