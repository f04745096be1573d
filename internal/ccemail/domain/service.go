package domain

import (
	"context"
	"errors"

	"github.com/signdesk/signdesk/pkg/db/pagination"
)

type ListCCEmailsRequest struct {
	Page     int
	Limit    int
	Search   string
	OfficeID string
	AgentID  string
}

type ListCCEmailsResponse struct {
	pagination.PageInfo
	CCEmails []CCEmail `json:"ccEmails"`
}

type CreateCCEmailRequest struct {
	Email    string `json:"email" binding:"required"`
	OfficeID string `json:"officeId" binding:"required"`
	AgentID  string `json:"agentId"`
}

type UpdateCCEmailRequest struct {
	Email    string `json:"email" binding:"required"`
	OfficeID string `json:"officeId" binding:"required"`
	AgentID  string `json:"agentId"`
}

type Service interface {
	List(ctx context.Context, req ListCCEmailsRequest) (ListCCEmailsResponse, error)
	GetByID(ctx context.Context, id string) (CCEmail, error)
	// Create registers a recipient. An active record with the same
	// email, office and agent combination is a conflict.
	Create(ctx context.Context, req CreateCCEmailRequest) (CCEmail, error)
	Update(ctx context.Context, id string, req UpdateCCEmailRequest) (CCEmail, error)
	// Delete deactivates the record, recording who removed it.
	Delete(ctx context.Context, id string) error
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrDuplicate       = errors.New("duplicate_cc_email")
	ErrNotFound        = errors.New("not_found")
	ErrAccessDenied    = errors.New("access_denied")
)
