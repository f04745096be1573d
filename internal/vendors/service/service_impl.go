package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/vendors/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("vendor.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVendorRequest) (domain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Vendor{}, domain.ErrInvalidName
	}

	areas := req.ServiceAreas
	if areas == nil {
		areas = []string{}
	}

	now := s.clock.Now()
	vendor := domain.Vendor{
		ID:           s.genID.Generate(),
		Name:         name,
		ContactName:  strings.TrimSpace(req.ContactName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		ServiceAreas: datatypes.NewJSONSlice(areas),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &vendor); err != nil {
		return domain.Vendor{}, err
	}

	return vendor, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateVendorRequest) (domain.Vendor, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Vendor{}, domain.ErrInvalidID
	}

	vendor, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Vendor{}, err
	}
	if vendor == nil {
		return domain.Vendor{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Vendor{}, domain.ErrInvalidName
		}
		vendor.Name = name
	}
	if req.ContactName != nil {
		vendor.ContactName = strings.TrimSpace(*req.ContactName)
	}
	if req.Email != nil {
		vendor.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		vendor.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.ServiceAreas != nil {
		vendor.ServiceAreas = datatypes.NewJSONSlice(*req.ServiceAreas)
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	vendor.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, vendor); err != nil {
		return domain.Vendor{}, err
	}

	return *vendor, nil
}

func (s *Service) List(ctx context.Context, req domain.ListVendorsRequest) ([]domain.Vendor, error) {
	vendors, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	zip := strings.TrimSpace(req.ZipCode)
	if zip == "" {
		return vendors, nil
	}

	matched := make([]domain.Vendor, 0, len(vendors))
	for _, vendor := range vendors {
		if vendor.ServesZip(zip) {
			matched = append(matched, vendor)
		}
	}
	return matched, nil
}

func (s *Service) FindByZip(ctx context.Context, zip string) (*domain.Vendor, error) {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return nil, nil
	}

	vendors, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	for i := range vendors {
		if vendors[i].ServesZip(zip) {
			return &vendors[i], nil
		}
	}
	return nil, nil
}
