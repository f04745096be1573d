package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/auth/domain"
	"github.com/signdesk/signdesk/internal/auth/password"
	"github.com/signdesk/signdesk/internal/auth/token"
	"github.com/signdesk/signdesk/internal/authctx"
	"github.com/signdesk/signdesk/internal/clock"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"github.com/signdesk/signdesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Tokens *token.Manager
	Users  userdomain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	tokens *token.Manager
	users  userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("auth.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		tokens: p.Tokens,
		users:  p.Users,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.users.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Session{}, err
	}
	if user == nil || !user.IsActive || !password.Verify(req.Password, user.PasswordHash) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (userdomain.User, error) {
	if !userdomain.IsValidRole(req.Role) {
		return userdomain.User{}, domain.ErrInvalidRole
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	existing, err := s.users.FindByEmail(ctx, s.db, email)
	if err != nil {
		return userdomain.User{}, err
	}
	if existing != nil {
		return userdomain.User{}, domain.ErrEmailTaken
	}

	var officeID *snowflake.ID
	if raw := strings.TrimSpace(req.OfficeID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return userdomain.User{}, domain.ErrInvalidOffice
		}
		officeID = &parsed
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return userdomain.User{}, err
	}

	now := s.clock.Now()
	user := userdomain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         req.Role,
		OfficeID:     officeID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return userdomain.User{}, domain.ErrEmailTaken
		}
		return userdomain.User{}, err
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)

	return user, nil
}

func (s *Service) CurrentUser(ctx context.Context) (userdomain.User, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return userdomain.User{}, err
	}
	return *user, nil
}

func (s *Service) Refresh(ctx context.Context) (domain.Session, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	return s.session(user)
}

func (s *Service) caller(ctx context.Context) (*userdomain.User, error) {
	identity, ok := authctx.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, s.db, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func (s *Service) session(user *userdomain.User) (domain.Session, error) {
	var officeID *string
	if user.OfficeID != nil {
		v := user.OfficeID.String()
		officeID = &v
	}

	signed, expiresAt, err := s.tokens.Issue(user.ID.String(), user.Email, user.Role, officeID)
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}
