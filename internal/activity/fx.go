package activity

import (
	"github.com/modiatoukalord/kheops-sub000/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(service.NewService),
)
