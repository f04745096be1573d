package domain

import (
	"context"
	"errors"
)

type ListAgentsRequest struct {
	OfficeID string
}

type Service interface {
	// ListAgents lists active users visible to the caller. Agents see
	// only themselves, office admins see their office, global admins
	// see everyone.
	ListAgents(ctx context.Context, req ListAgentsRequest) ([]User, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
