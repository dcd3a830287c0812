package cmd

import (
	"errors"
	"fmt"
	"os"

	"squeezer/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "squeezer",
	Short: "Desired state reconciliation for Pulp",
	Long: `Squeezer converges repositories, remotes, publications, access policies
and tasks of a Pulp server onto a declared state.

Every module command reads its parameters from a YAML file and prints the
outcome ({changed, <entity>} or {failed, msg}) to stdout. The same modules
are served over HTTP by "squeezer start".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Module failures were already printed as output
		if errors.Is(err, errReported) {
			os.Exit(1)
		}

		// Debug level gives ISO8601 timestamps on the console
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
