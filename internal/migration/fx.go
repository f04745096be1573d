package migration

import (
	"github.com/bwmarrin/snowflake"
	ccemaildomain "github.com/signdesk/signdesk/internal/ccemail/domain"
	"github.com/signdesk/signdesk/internal/config"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	"github.com/signdesk/signdesk/internal/seed"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Embedded databases skip the SQL migrations and build the
			// schema from the models directly.
			if err := conn.AutoMigrate(
				&officedomain.Office{},
				&userdomain.User{},
				&vendordomain.Vendor{},
				&orderdomain.Order{},
				&reorderdomain.Reorder{},
				&ccemaildomain.CCEmail{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedOnStart {
			return seed.EnsureDefaultOfficeAndAdmin(conn, genID)
		}
		return nil
	}),
)
