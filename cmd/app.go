package cmd

import (
	"context"
	"fmt"

	"squeezer/core/config"
	"squeezer/core/database"
	"squeezer/core/logger"
	"squeezer/core/metrics"
	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/storage"
	"squeezer/core/tasks"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds everything a command needs to run module invocations.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Client  pulp.Client
	Engine  *reconcile.Engine
	History *database.History
	Archive *storage.Archive
	// Registry is set when metrics are enabled.
	Registry *prometheus.Registry
	// DB and Store are the raw backends, set whenever a connection succeeded.
	DB    *gorm.DB
	Store storage.Bucket
}

// bootstrap loads the configuration and wires the client, the task
// awaiter and the optional observers into an engine. Observer backends
// that cannot be reached are logged and skipped.
func bootstrap(ctx context.Context, withMetrics bool) (*App, error) {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 3. Connect to Pulp
	client, err := pulp.Connect(cfg.Pulp, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pulp client: %w", err)
	}
	if _, ok := client.(pulp.Unavailable); ok {
		logg.Warn("No Pulp server configured, invocations will fail", zap.String("hint", "set PULP_BASE_URL"))
	}

	app := &App{Config: cfg, Logger: logg, Client: client}
	var observers []reconcile.Observer

	// 4. Invocation history (Optional)
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			app.DB = db
			history := database.NewHistory(db)
			if err := history.Migrate(ctx); err != nil {
				logg.Warn("History table unusable", zap.Error(err))
			} else {
				app.History = history
				observers = append(observers, history)
			}
		}
	}

	// 5. Result archive (Optional)
	if cfg.Storage.Enabled {
		if store, err := storage.Open(cfg.Storage); err != nil {
			logg.Warn("Optional storage connection failed", zap.Error(err))
		} else {
			app.Store = store
			archive := storage.NewArchive(store, cfg.Storage.Prefix)
			if err := archive.EnsureBucket(ctx); err != nil {
				logg.Warn("Archive bucket unusable", zap.Error(err))
			} else {
				app.Archive = archive
				observers = append(observers, archive)
			}
		}
	}

	// 6. Metrics
	if withMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector, err := metrics.New(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		app.Registry = reg
		observers = append(observers, collector)
	}

	app.Engine = reconcile.NewEngine(
		tasks.FromConfig(client, cfg.Pulp, logg),
		reconcile.WithLogger(logg),
		reconcile.WithObservers(observers...),
	)
	return app, nil
}

// Close releases the database connection and flushes the logger.
func (a *App) Close() {
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.Logger.Sync()
}
