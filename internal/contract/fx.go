package contract

import (
	"github.com/modiatoukalord/kheops-sub000/internal/contract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contract.service",
	fx.Provide(service.NewService),
)
