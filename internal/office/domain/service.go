package domain

import (
	"context"
	"errors"
)

type CreateOfficeRequest struct {
	Name          string `json:"name" binding:"required"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

type Service interface {
	Create(ctx context.Context, req CreateOfficeRequest) (Office, error)
	List(ctx context.Context) ([]Office, error)
	GetByID(ctx context.Context, id string) (Office, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
