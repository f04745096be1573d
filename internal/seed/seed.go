// Package seed bootstraps a fresh install with a default office and an
// administrator account so the API is usable immediately.
package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/auth/password"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"gorm.io/gorm"
)

const (
	defaultOfficeName = "Main Office"
	defaultAdminEmail = "admin@signdesk.local"
)

// EnsureDefaultOfficeAndAdmin creates the default office and IT_ADMIN
// user unless users already exist. The generated password is static
// and must be rotated after first login.
func EnsureDefaultOfficeAndAdmin(db *gorm.DB, genID *snowflake.Node) error {
	var count int64
	if err := db.Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	office := officedomain.Office{
		ID:        genID.Generate(),
		Name:      defaultOfficeName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&office).Error; err != nil {
		return err
	}

	hash, err := password.Hash("ChangeMe123!")
	if err != nil {
		return err
	}

	officeID := office.ID
	admin := userdomain.User{
		ID:           genID.Generate(),
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         userdomain.RoleITAdmin,
		OfficeID:     &officeID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return db.Create(&admin).Error
}
