package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("user.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListAgents(ctx context.Context, req domain.ListAgentsRequest) ([]domain.User, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	var filter domain.AgentFilter
	if officeID := strings.TrimSpace(req.OfficeID); officeID != "" {
		parsed, err := snowflake.ParseString(officeID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.OfficeID = &parsed
	}

	// The caller's role overrides whatever office was requested.
	switch {
	case caller.Role == domain.RoleAgent:
		id := caller.UserID
		filter.AgentID = &id
	case caller.Role == domain.RoleAdminAgent && caller.OfficeID != nil:
		filter.OfficeID = caller.OfficeID
	}

	return s.repo.ListAgents(ctx, s.db, filter)
}
