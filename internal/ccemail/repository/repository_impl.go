package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/ccemail/domain"
	"github.com/signdesk/signdesk/pkg/db/option"
	"github.com/signdesk/signdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ccEmail *domain.CCEmail) error {
	return db.WithContext(ctx).Create(ccEmail).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, ccEmail *domain.CCEmail) error {
	return db.WithContext(ctx).Save(ccEmail).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CCEmail, error) {
	var ccEmail domain.CCEmail
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&ccEmail).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ccEmail, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]domain.CCEmail, error) {
	stmt := r.compile(db.WithContext(ctx).Model(&domain.CCEmail{}), filter)
	stmt = option.ApplyPagination(page).Apply(stmt)

	var ccEmails []domain.CCEmail
	err := stmt.
		Order("created_at desc, id desc").
		Find(&ccEmails).Error
	if err != nil {
		return nil, err
	}
	return ccEmails, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.Filter) (int64, error) {
	var total int64
	err := r.compile(db.WithContext(ctx).Model(&domain.CCEmail{}), filter).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) FindActiveDuplicate(ctx context.Context, db *gorm.DB, email string, officeID snowflake.ID, agentID *snowflake.ID, excludeID snowflake.ID) (*domain.CCEmail, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.CCEmail{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Where("office_id = ?", officeID).
		Where("is_active = ?", true)
	if agentID != nil {
		stmt = stmt.Where("agent_id = ?", *agentID)
	} else {
		stmt = stmt.Where("agent_id IS NULL")
	}
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var ccEmail domain.CCEmail
	err := stmt.First(&ccEmail).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ccEmail, nil
}

func (r *repo) ListActiveByOffice(ctx context.Context, db *gorm.DB, officeID snowflake.ID) ([]domain.CCEmail, error) {
	var ccEmails []domain.CCEmail
	err := db.WithContext(ctx).
		Where("office_id = ?", officeID).
		Where("is_active = ?", true).
		Find(&ccEmails).Error
	if err != nil {
		return nil, err
	}
	return ccEmails, nil
}

func (r *repo) compile(stmt *gorm.DB, filter domain.Filter) *gorm.DB {
	stmt = stmt.Where("is_active = ?", true)
	if filter.OfficeID != nil {
		stmt = stmt.Where("office_id = ?", *filter.OfficeID)
	}
	if filter.AgentID != nil {
		stmt = stmt.Where("agent_id = ?", *filter.AgentID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		stmt = stmt.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return stmt
}
