package installment

import (
	"github.com/modiatoukalord/kheops-sub000/internal/installment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("installment.service",
	fx.Provide(service.NewService),
)
