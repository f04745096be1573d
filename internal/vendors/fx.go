package vendors

import (
	"github.com/signdesk/signdesk/internal/vendors/repository"
	"github.com/signdesk/signdesk/internal/vendors/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vendor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
