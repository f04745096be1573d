package order

import (
	"github.com/signdesk/signdesk/internal/order/repository"
	"github.com/signdesk/signdesk/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
