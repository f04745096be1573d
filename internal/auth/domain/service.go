package domain

import (
	"context"
	"errors"
	"time"

	userdomain "github.com/signdesk/signdesk/internal/user/domain"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required"`
	OfficeID  string `json:"officeId"`
}

type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      userdomain.User `json:"user"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (Session, error)
	// Register creates a user account. Only admin roles may call it.
	Register(ctx context.Context, req RegisterRequest) (userdomain.User, error)
	// CurrentUser loads the full user record for the caller identity.
	CurrentUser(ctx context.Context) (userdomain.User, error)
	// Refresh issues a fresh token for the caller.
	Refresh(ctx context.Context) (Session, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidOffice      = errors.New("invalid_office")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
