package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"squeezer/core/loader"
	"squeezer/core/server"
	"squeezer/feature/accesspolicy"
	"squeezer/feature/apicall"
	"squeezer/feature/integrity"
	"squeezer/feature/publication"
	"squeezer/feature/remote"
	"squeezer/feature/repository"
	"squeezer/feature/sync"
	"squeezer/feature/task"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Squeezer API
// @version 1.0
// @description Desired state reconciliation for Pulp content servers.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the squeezer server",
	Long:  `Starts the HTTP server exposing every module as POST /<module>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer app.Close()
		logg := app.Logger
		zap.ReplaceGlobals(logg)

		mgr := loader.NewManager()
		mgr.Register(repository.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(remote.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(sync.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(publication.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(accesspolicy.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(task.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(apicall.NewFeature(app.Client, app.Engine, logg))
		mgr.Register(integrity.NewFeature(app.Client, app.DB, app.Store, app.Config.Storage.Prefix, logg))

		var gatherer prometheus.Gatherer
		if app.Registry != nil {
			gatherer = app.Registry
		}
		srv, err := server.NewApp(app.Config.Server, logg, gatherer, mgr)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", app.Config.Server.Port))
			if err := srv.Listen(":" + app.Config.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return srv.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
