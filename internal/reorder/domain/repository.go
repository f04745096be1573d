package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reorder *Reorder) error
	Update(ctx context.Context, db *gorm.DB, reorder *Reorder) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Reorder, error)
	ListByOriginalOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]Reorder, error)
	ListByOriginalOrders(ctx context.Context, db *gorm.DB, orderIDs []snowflake.ID) ([]Reorder, error)
}
