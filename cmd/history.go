package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyOutput string
)

// historyCmd lists recorded invocations from the database.
var historyCmd = &cobra.Command{
	Use:   "history [entity]",
	Short: "List recent module invocations",
	Long:  `Lists invocations recorded in the history database (DATABASE_ENABLED=true), newest first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer app.Close()
		if app.History == nil {
			return errors.New("invocation history is not available, check the database settings")
		}

		var entity string
		if len(args) == 1 {
			entity = args[0]
		}
		rows, err := app.History.Recent(cmd.Context(), entity, historyLimit)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), historyOutput, rows)
	},
}

// archiveCmd is the parent of the result archive commands.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse archived invocation results",
	Long:  `Browses invocation results archived in object storage (STORAGE_ENABLED=true).`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list [entity]",
	Short: "List archived results",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := archiveApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var entity string
		if len(args) == 1 {
			entity = args[0]
		}
		names, err := app.Archive.List(cmd.Context(), entity)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), historyOutput, names)
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <object>",
	Short: "Show one archived result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := archiveApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		entry, err := app.Archive.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), historyOutput, entry)
	},
}

func archiveApp(cmd *cobra.Command) (*App, error) {
	app, err := bootstrap(cmd.Context(), false)
	if err != nil {
		return nil, err
	}
	if app.Archive == nil {
		app.Close()
		return nil, errors.New("result archive is not available, check the storage settings")
	}
	return app, nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of invocations")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", outputJSON, "Output format (json, yaml)")
	archiveCmd.PersistentFlags().StringVarP(&historyOutput, "output", "o", outputJSON, "Output format (json, yaml)")

	archiveCmd.AddCommand(archiveListCmd, archiveGetCmd)
	RootCmd.AddCommand(historyCmd, archiveCmd)
}
