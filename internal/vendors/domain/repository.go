package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, vendor *Vendor) error
	Update(ctx context.Context, db *gorm.DB, vendor *Vendor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Vendor, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Vendor, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]Vendor, error)
}
