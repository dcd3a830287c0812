package server

import (
	"squeezer/core/loader"
	"squeezer/core/logger"
	"squeezer/core/middleware/auth"
	"squeezer/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "squeezer/docs/swagger"
)

// NewApp builds the Fiber application: ray ids, request logging, public
// swagger and metrics routes, API key auth, then every enabled feature.
// gatherer may be nil to disable /metrics.
func NewApp(cfg Config, logg *zap.Logger, gatherer prometheus.Gatherer, mgr *loader.Manager) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)
	if cfg.Metrics && gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	return app, nil
}
