package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/config"
	"github.com/signdesk/signdesk/internal/logger"
	"github.com/signdesk/signdesk/internal/migration"
	"github.com/signdesk/signdesk/internal/observability"
	"github.com/signdesk/signdesk/internal/server"
	"github.com/signdesk/signdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
