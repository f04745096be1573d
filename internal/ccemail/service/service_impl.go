package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/ccemail/domain"
	"github.com/signdesk/signdesk/internal/clock"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 10

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ccemail.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListCCEmailsRequest) (domain.ListCCEmailsResponse, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.ListCCEmailsResponse{}, domain.ErrUnauthenticated
	}

	filter := domain.Filter{Search: strings.TrimSpace(req.Search)}

	if raw := strings.TrimSpace(req.OfficeID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListCCEmailsResponse{}, domain.ErrInvalidID
		}
		filter.OfficeID = &parsed
	}
	if raw := strings.TrimSpace(req.AgentID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListCCEmailsResponse{}, domain.ErrInvalidID
		}
		filter.AgentID = &parsed
	}

	// Caller scoping overrides the requested filters.
	switch {
	case caller.Role == userdomain.RoleAgent:
		id := caller.UserID
		filter.AgentID = &id
	case caller.Role == userdomain.RoleAdminAgent && caller.OfficeID != nil:
		filter.OfficeID = caller.OfficeID
	}

	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}
	if page.Limit <= 0 {
		page.Limit = defaultListLimit
	}

	total, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.ListCCEmailsResponse{}, err
	}

	ccEmails, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListCCEmailsResponse{}, err
	}

	return domain.ListCCEmailsResponse{
		PageInfo: pagination.BuildPageInfo(total, page),
		CCEmails: ccEmails,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.CCEmail, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.CCEmail{}, domain.ErrUnauthenticated
	}

	ccEmail, err := s.find(ctx, id)
	if err != nil {
		return domain.CCEmail{}, err
	}
	if err := accessible(caller, ccEmail); err != nil {
		return domain.CCEmail{}, err
	}

	return *ccEmail, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateCCEmailRequest) (domain.CCEmail, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.CCEmail{}, domain.ErrUnauthenticated
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.CCEmail{}, domain.ErrInvalidEmail
	}

	officeID, err := snowflake.ParseString(strings.TrimSpace(req.OfficeID))
	if err != nil || officeID == 0 {
		return domain.CCEmail{}, domain.ErrInvalidID
	}

	var agentID *snowflake.ID
	if raw := strings.TrimSpace(req.AgentID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.CCEmail{}, domain.ErrInvalidID
		}
		agentID = &parsed
	}

	if caller.Role == userdomain.RoleAgent {
		if agentID != nil && *agentID != caller.UserID {
			return domain.CCEmail{}, domain.ErrAccessDenied
		}
		if caller.OfficeID != nil && officeID != *caller.OfficeID {
			return domain.CCEmail{}, domain.ErrAccessDenied
		}
	}
	if caller.Role == userdomain.RoleAdminAgent && caller.OfficeID != nil && officeID != *caller.OfficeID {
		return domain.CCEmail{}, domain.ErrAccessDenied
	}

	existing, err := s.repo.FindActiveDuplicate(ctx, s.db, email, officeID, agentID, 0)
	if err != nil {
		return domain.CCEmail{}, err
	}
	if existing != nil {
		return domain.CCEmail{}, domain.ErrDuplicate
	}

	now := s.clock.Now()
	ccEmail := domain.CCEmail{
		ID:        s.genID.Generate(),
		Email:     email,
		OfficeID:  officeID,
		AgentID:   agentID,
		EnteredBy: caller.UserID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &ccEmail); err != nil {
		return domain.CCEmail{}, err
	}

	return ccEmail, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateCCEmailRequest) (domain.CCEmail, error) {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.CCEmail{}, domain.ErrUnauthenticated
	}

	ccEmail, err := s.find(ctx, id)
	if err != nil {
		return domain.CCEmail{}, err
	}
	if err := accessible(caller, ccEmail); err != nil {
		return domain.CCEmail{}, err
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.CCEmail{}, domain.ErrInvalidEmail
	}

	officeID, err := snowflake.ParseString(strings.TrimSpace(req.OfficeID))
	if err != nil || officeID == 0 {
		return domain.CCEmail{}, domain.ErrInvalidID
	}

	var agentID *snowflake.ID
	if raw := strings.TrimSpace(req.AgentID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.CCEmail{}, domain.ErrInvalidID
		}
		agentID = &parsed
	}

	existing, err := s.repo.FindActiveDuplicate(ctx, s.db, email, officeID, agentID, ccEmail.ID)
	if err != nil {
		return domain.CCEmail{}, err
	}
	if existing != nil {
		return domain.CCEmail{}, domain.ErrDuplicate
	}

	callerID := caller.UserID
	ccEmail.Email = email
	ccEmail.OfficeID = officeID
	ccEmail.AgentID = agentID
	ccEmail.ModifiedBy = &callerID
	ccEmail.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, ccEmail); err != nil {
		return domain.CCEmail{}, err
	}

	return *ccEmail, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	caller, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	ccEmail, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := accessible(caller, ccEmail); err != nil {
		return err
	}

	callerID := caller.UserID
	ccEmail.IsActive = false
	ccEmail.ModifiedBy = &callerID
	ccEmail.UpdatedAt = s.clock.Now()

	return s.repo.Update(ctx, s.db, ccEmail)
}

func (s *Service) find(ctx context.Context, id string) (*domain.CCEmail, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	ccEmail, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if ccEmail == nil {
		return nil, domain.ErrNotFound
	}
	return ccEmail, nil
}

func accessible(caller authctx.Identity, ccEmail *domain.CCEmail) error {
	if caller.Role == userdomain.RoleAgent {
		if ccEmail.AgentID == nil || *ccEmail.AgentID != caller.UserID {
			return domain.ErrAccessDenied
		}
	}
	if caller.Role == userdomain.RoleAdminAgent && caller.OfficeID != nil && ccEmail.OfficeID != *caller.OfficeID {
		return domain.ErrAccessDenied
	}
	return nil
}
