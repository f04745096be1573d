package user

import (
	"github.com/signdesk/signdesk/internal/user/repository"
	"github.com/signdesk/signdesk/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
