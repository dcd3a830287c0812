package cmd

import (
	"squeezer/feature/integrity"

	"github.com/spf13/cobra"
)

var (
	integrityOutput string
	integrityFix    bool
)

func integrityService(cmd *cobra.Command) (*App, *integrity.Service, error) {
	app, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return nil, nil, err
	}
	svc := integrity.NewService(app.Client, app.DB, app.Store, app.Config.Storage.Prefix, app.Logger)
	return app, svc, nil
}

// integrityCmd runs every check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the Pulp server and the optional backends",
	Long:  `Reads the Pulp server status, verifies the history table and inspects the result archive bucket.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, svc, err := integrityService(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return writeOutput(cmd.OutOrStdout(), integrityOutput, svc.All(cmd.Context()))
	},
}

var integrityPulpCmd = &cobra.Command{
	Use:   "pulp",
	Short: "Check the Pulp server status and plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, svc, err := integrityService(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		report, err := svc.CheckPulp(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), integrityOutput, report)
	},
}

var integrityHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Check the invocation history table",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, svc, err := integrityService(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		report, err := svc.CheckHistory(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), integrityOutput, report)
	},
}

var integrityArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Check and optionally create the archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, svc, err := integrityService(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		report, err := svc.CheckArchive(cmd.Context())
		if err != nil {
			return err
		}
		if !report.Exists && integrityFix {
			if err := svc.FixArchive(cmd.Context()); err != nil {
				return err
			}
			if report, err = svc.CheckArchive(cmd.Context()); err != nil {
				return err
			}
		}
		return writeOutput(cmd.OutOrStdout(), integrityOutput, report)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.PersistentFlags().StringVarP(&integrityOutput, "output", "o", "json", "Output format (json, yaml)")
	integrityArchiveCmd.Flags().BoolVar(&integrityFix, "fix", false, "Create the bucket when it is missing")
	integrityCmd.AddCommand(integrityPulpCmd, integrityHistoryCmd, integrityArchiveCmd)
}
