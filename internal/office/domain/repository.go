package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, office *Office) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Office, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Office, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]Office, error)
}
