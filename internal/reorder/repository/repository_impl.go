package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/reorder/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reorder *domain.Reorder) error {
	return db.WithContext(ctx).Create(reorder).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, reorder *domain.Reorder) error {
	return db.WithContext(ctx).Save(reorder).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Reorder{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Reorder, error) {
	var reorder domain.Reorder
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&reorder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reorder, nil
}

func (r *repo) ListByOriginalOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]domain.Reorder, error) {
	var reorders []domain.Reorder
	err := db.WithContext(ctx).
		Where("original_order_id = ?", orderID).
		Order("created_at desc, id desc").
		Find(&reorders).Error
	if err != nil {
		return nil, err
	}
	return reorders, nil
}

func (r *repo) ListByOriginalOrders(ctx context.Context, db *gorm.DB, orderIDs []snowflake.ID) ([]domain.Reorder, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var reorders []domain.Reorder
	err := db.WithContext(ctx).
		Where("original_order_id IN ?", orderIDs).
		Order("created_at desc, id desc").
		Find(&reorders).Error
	if err != nil {
		return nil, err
	}
	return reorders, nil
}
