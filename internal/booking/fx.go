package booking

import (
	"github.com/modiatoukalord/kheops-sub000/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(service.NewService),
)
