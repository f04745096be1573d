// Package option provides composable query modifiers for gorm statements.
package option

import (
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type paginate struct {
	page pagination.Pagination
}

// ApplyPagination returns an option that applies offset and limit.
func ApplyPagination(page pagination.Pagination) Option {
	return paginate{page: page}
}

func (o paginate) Apply(stmt *gorm.DB) *gorm.DB {
	n := o.page.Normalize()
	return stmt.Offset(o.page.Offset()).Limit(n.Limit)
}
