package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

// StatsRow is one cell of the status breakdown grouped by installation
// type and status.
type StatsRow struct {
	InstallationType string `json:"installationType"`
	Status           string `json:"status"`
	Count            int64  `json:"count"`
}

// OfficeTypeCount is one cell of the report aggregation grouped by
// office and installation type.
type OfficeTypeCount struct {
	OfficeID         snowflake.ID `json:"officeId"`
	InstallationType string       `json:"installationType"`
	Count            int64        `json:"count"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]Order, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
	Stats(ctx context.Context, db *gorm.DB, filter Filter) ([]StatsRow, error)
	CountByOfficeAndType(ctx context.Context, db *gorm.DB, filter Filter) ([]OfficeTypeCount, error)
}
