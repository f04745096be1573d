package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// AgentFilter narrows the agent listing. A nil OfficeID or AgentID
// leaves the corresponding dimension unconstrained.
type AgentFilter struct {
	OfficeID *snowflake.ID
	AgentID  *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	ListAgents(ctx context.Context, db *gorm.DB, filter AgentFilter) ([]User, error)
}
