package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/vendors/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, vendor *domain.Vendor) error {
	return db.WithContext(ctx).Create(vendor).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, vendor *domain.Vendor) error {
	return db.WithContext(ctx).Save(vendor).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vendors []domain.Vendor
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}
