package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/order/domain"
	"github.com/signdesk/signdesk/pkg/db/option"
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Order{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]domain.Order, error) {
	stmt := r.compile(db.WithContext(ctx).Model(&domain.Order{}), filter)
	stmt = option.ApplyPagination(page).Apply(stmt)

	var orders []domain.Order
	err := stmt.
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.Filter) (int64, error) {
	var total int64
	err := r.compile(db.WithContext(ctx).Model(&domain.Order{}), filter).
		Distinct("id").
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) Stats(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.StatsRow, error) {
	var rows []domain.StatsRow
	err := r.compile(db.WithContext(ctx).Model(&domain.Order{}), filter).
		Select("installation_type, status, COUNT(id) AS count").
		Group("installation_type").
		Group("status").
		Order("installation_type asc, status asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountByOfficeAndType(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.OfficeTypeCount, error) {
	var rows []domain.OfficeTypeCount
	err := r.compile(db.WithContext(ctx).Model(&domain.Order{}), filter).
		Select("office_id, installation_type, COUNT(id) AS count").
		Group("office_id").
		Group("installation_type").
		Order("office_id asc, installation_type asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// compile turns a filter into a WHERE clause. Every predicate is AND-ed
// together; the visibility rule and the search conditions form their
// own parenthesized OR groups so they cannot leak into each other.
func (r *repo) compile(stmt *gorm.DB, filter domain.Filter) *gorm.DB {
	if !filter.Cutoff.IsZero() {
		stmt = stmt.Where("(installation_date IS NULL OR installation_date >= ?)", filter.Cutoff)
	}

	if filter.OfficeID != nil {
		stmt = stmt.Where("office_id = ?", *filter.OfficeID)
	}
	if filter.AgentID != nil {
		stmt = stmt.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.VendorID != nil {
		stmt = stmt.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.InstallationType != "" {
		stmt = stmt.Where("installation_type = ?", filter.InstallationType)
	}
	if filter.CreatedFrom != nil {
		stmt = stmt.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		stmt = stmt.Where("created_at <= ?", *filter.CreatedTo)
	}
	if filter.EligibleOnly {
		stmt = stmt.Where("(completion_date IS NOT NULL OR installation_type = ?)", domain.TypeRemoval)
	}

	if search := strings.TrimSpace(filter.Search); search != "" && len(filter.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		conds := make([]string, 0, len(filter.SearchColumns))
		args := make([]interface{}, 0, len(filter.SearchColumns))
		for _, column := range filter.SearchColumns {
			conds = append(conds, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
		stmt = stmt.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	return stmt
}
