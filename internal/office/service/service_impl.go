package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/office/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("office.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOfficeRequest) (domain.Office, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Office{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	office := domain.Office{
		ID:            s.genID.Generate(),
		Name:          name,
		StreetAddress: strings.TrimSpace(req.StreetAddress),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		ZipCode:       strings.TrimSpace(req.ZipCode),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &office); err != nil {
		return domain.Office{}, err
	}

	return office, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Office, error) {
	return s.repo.ListActive(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Office, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Office{}, domain.ErrInvalidID
	}

	office, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Office{}, err
	}
	if office == nil {
		return domain.Office{}, domain.ErrNotFound
	}

	return *office, nil
}
