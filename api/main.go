package api

import (
	"context"
	"fmt"

	"github.com/ErwinJ1299/scout2-sub002/alerts"
	"github.com/ErwinJ1299/scout2-sub002/config"
	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/logger"
	"github.com/ErwinJ1299/scout2-sub002/outcomes"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rewards"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"github.com/ErwinJ1299/scout2-sub002/users"
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Dependencies is the full DI graph of the service. CLI tools reuse it to
// run one-shot commands against the same wiring.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Sugar,
			config.NewConfig,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			store.NewTxnRunner,
			readings.NewRepository,
			readings.NewService,
			rules.NewRepository,
			rules.NewService,
			users.NewRepository,
			users.NewService,
			rewards.NewRepository,
			rewards.NewService,
			outcomes.NewService,
			alerts.NewRepository,
			alerts.NewService,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	opts := append(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(opts...).Run()
}

func NewServer(handler *Handler, healthCheck *HealthCheck, zapLogger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(zapLogger))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterRoutes(e, handler)

	return e, nil
}

func RegisterRoutes(e *echo.Echo, handler *Handler) {
	v1 := e.Group("/v1")

	v1.POST("/outcomes/evaluate", handler.EvaluateOutcomes)

	v1.GET("/users/:userId/stats", handler.GetUserStats)
	v1.GET("/users/:userId/rewards", handler.ListUserRewards)

	v1.POST("/patients/:patientId/readings", handler.CreateReading)
	v1.GET("/patients/:patientId/readings", handler.ListReadings)
	v1.GET("/patients/:patientId/alerts", handler.ListAlerts)

	v1.POST("/alerts/:alertId/acknowledge", handler.AcknowledgeAlert)
	v1.POST("/alerts/:alertId/resolve", handler.ResolveAlert)

	v1.GET("/rules", handler.ListRules)
	v1.POST("/rules", handler.CreateRule)
	v1.POST("/rules/:ruleId/deactivate", handler.DeactivateRule)
}

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// Lifecycle hooks run in topological order, so mongo is
			// connected before the readiness flag flips.
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}
