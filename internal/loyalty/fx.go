package loyalty

import (
	"github.com/modiatoukalord/kheops-sub000/internal/loyalty/service"
	"go.uber.org/fx"
)

var Module = fx.Module("loyalty.service",
	fx.Provide(service.NewService),
)
