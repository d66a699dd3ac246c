package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/modiatoukalord/kheops-sub000/internal/activity/domain"
	catalogdomain "github.com/modiatoukalord/kheops-sub000/internal/catalog/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/config"
	installmentdomain "github.com/modiatoukalord/kheops-sub000/internal/installment/domain"
	ledgerdomain "github.com/modiatoukalord/kheops-sub000/internal/ledger/domain"
	loyaltydomain "github.com/modiatoukalord/kheops-sub000/internal/loyalty/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg            config.Config
	Log            *zap.Logger
	DB             *gorm.DB
	ActivitySvc    activitydomain.Service
	InstallmentSvc installmentdomain.Service
	LedgerSvc      ledgerdomain.Service
	CatalogSvc     catalogdomain.Service
	LoyaltySvc     loyaltydomain.Service
}

// Server holds the HTTP handlers for the billing ledger API.
type Server struct {
	cfg            config.Config
	log            *zap.Logger
	db             *gorm.DB
	activitySvc    activitydomain.Service
	installmentSvc installmentdomain.Service
	ledgerSvc      ledgerdomain.Service
	catalogSvc     catalogdomain.Service
	loyaltySvc     loyaltydomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:            p.Cfg,
		log:            p.Log.Named("server"),
		db:             p.DB,
		activitySvc:    p.ActivitySvc,
		installmentSvc: p.InstallmentSvc,
		ledgerSvc:      p.LedgerSvc,
		catalogSvc:     p.CatalogSvc,
		loyaltySvc:     p.LoyaltySvc,
	}
}

// NewEngine builds the gin engine with the ambient middleware stack.
func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(log))
	return engine
}

// RegisterRoutes attaches the API surface.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.POST("/activities", s.Checkout)
		api.GET("/activities", s.ListActivities)
		api.DELETE("/activities/:id", s.DeleteActivity)
		api.GET("/activities/revenue", s.TotalRevenue)
		api.POST("/activities/:id/installments", s.RecordInstallment)

		api.POST("/bookings/:id/cancel-payment", s.CancelBookingPayment)

		api.GET("/categories", s.ListCategories)
		api.GET("/transactions", s.ListTransactions)
		api.GET("/clients/:id/points", s.ClientPoints)
		api.POST("/clients/:id/points", s.CreditPoints)
	}
}

// Health reports liveness plus database reachability.
func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server, engine *gin.Engine) {
		s.RegisterRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)
