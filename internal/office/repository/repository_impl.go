package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/office/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, office *domain.Office) error {
	return db.WithContext(ctx).Create(office).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Office, error) {
	var office domain.Office
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&office).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &office, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]domain.Office, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var offices []domain.Office
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&offices).Error
	if err != nil {
		return nil, err
	}
	return offices, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.Office, error) {
	var offices []domain.Office
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&offices).Error
	if err != nil {
		return nil, err
	}
	return offices, nil
}
