package auth

import (
	"github.com/signdesk/signdesk/internal/auth/service"
	"github.com/signdesk/signdesk/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(token.New),
	fx.Provide(service.New),
)
