package reorder

import (
	"github.com/signdesk/signdesk/internal/reorder/repository"
	"github.com/signdesk/signdesk/internal/reorder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reorder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
