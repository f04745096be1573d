package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Filter struct {
	OfficeID *snowflake.ID
	AgentID  *snowflake.ID
	Search   string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ccEmail *CCEmail) error
	Update(ctx context.Context, db *gorm.DB, ccEmail *CCEmail) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CCEmail, error)
	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]CCEmail, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
	// FindActiveDuplicate returns an active record with the same
	// email, office and agent combination, excluding excludeID when
	// non-zero.
	FindActiveDuplicate(ctx context.Context, db *gorm.DB, email string, officeID snowflake.ID, agentID *snowflake.ID, excludeID snowflake.ID) (*CCEmail, error)
	// ListActiveByOffice returns the active recipients of one office.
	ListActiveByOffice(ctx context.Context, db *gorm.DB, officeID snowflake.ID) ([]CCEmail, error)
}
