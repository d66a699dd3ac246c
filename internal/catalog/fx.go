package catalog

import (
	"github.com/modiatoukalord/kheops-sub000/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(service.NewService),
)
