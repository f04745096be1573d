package office

import (
	"github.com/signdesk/signdesk/internal/office/repository"
	"github.com/signdesk/signdesk/internal/office/service"
	"go.uber.org/fx"
)

var Module = fx.Module("office.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
