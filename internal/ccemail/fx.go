package ccemail

import (
	"github.com/signdesk/signdesk/internal/ccemail/repository"
	"github.com/signdesk/signdesk/internal/ccemail/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ccemail.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
