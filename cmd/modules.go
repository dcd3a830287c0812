package cmd

import (
	"context"
	"errors"

	"squeezer/core/reconcile"
	"squeezer/feature/accesspolicy"
	"squeezer/feature/apicall"
	"squeezer/feature/publication"
	"squeezer/feature/remote"
	"squeezer/feature/repository"
	"squeezer/feature/sync"
	"squeezer/feature/task"

	"github.com/spf13/cobra"
)

// errReported marks failures already printed as module output.
var errReported = errors.New("module failed")

type runFunc[P any] func(ctx context.Context, app *App, p P, checkMode bool) (reconcile.Result, error)

// newModuleCmd builds a command running one module invocation. Params come
// from --params-file; the result, or the failure, is printed to stdout.
func newModuleCmd[P any](use, short, long string, run runFunc[P]) *cobra.Command {
	var (
		checkMode  bool
		output     string
		paramsFile string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p P
			if err := readParams(paramsFile, cmd.InOrStdin(), &p); err != nil {
				return err
			}

			app, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := run(cmd.Context(), app, p, checkMode)
			if err != nil {
				if werr := writeOutput(cmd.OutOrStdout(), output, reconcile.Failure(err)); werr != nil {
					return werr
				}
				return errReported
			}
			return writeOutput(cmd.OutOrStdout(), output, result.Map())
		},
	}
	cmd.Flags().BoolVar(&checkMode, "check-mode", false, "Report what would change without changing anything")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format (json, yaml)")
	cmd.Flags().StringVarP(&paramsFile, "params-file", "f", "", "YAML file with the module parameters, - for stdin")
	return cmd
}

func init() {
	RootCmd.AddCommand(
		newModuleCmd("repository", "Ensure the state of a repository",
			`Create, update, delete or report a deb or python repository.

Example params:
  plugin: deb
  name: bookworm
  description: Debian mirror
  state: present`,
			func(ctx context.Context, app *App, p repository.Params, checkMode bool) (reconcile.Result, error) {
				return repository.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
		newModuleCmd("remote", "Ensure the state of a remote",
			`Create, update, delete or report a deb or python remote.`,
			func(ctx context.Context, app *App, p remote.Params, checkMode bool) (reconcile.Result, error) {
				return remote.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
		newModuleCmd("sync", "Sync a repository from a remote",
			`Sync a repository and report the resulting repository version.

Example params:
  repository: pypi-mirror
  remote: pypi`,
			func(ctx context.Context, app *App, p sync.Params, checkMode bool) (reconcile.Result, error) {
				return sync.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
		newModuleCmd("publication", "Ensure the state of a publication",
			`Publish the latest or a given version of a repository, or remove the publication.`,
			func(ctx context.Context, app *App, p publication.Params, checkMode bool) (reconcile.Result, error) {
				return publication.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
		newModuleCmd("access-policy", "Ensure the statements of an access policy",
			`Patch the statements and creation hooks of a viewset access policy.`,
			func(ctx context.Context, app *App, p accesspolicy.Params, checkMode bool) (reconcile.Result, error) {
				return accesspolicy.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
		newModuleCmd("task", "Cancel, await, delete or report a task",
			`Drive a task to canceled or completed, delete it, or report it.`,
			func(ctx context.Context, app *App, p task.Params, checkMode bool) (reconcile.Result, error) {
				return task.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
		newModuleCmd("api-call", "Call a Pulp API operation",
			`Call any operation of the Pulp API by operation id.

Example params:
  operation_id: status_read`,
			func(ctx context.Context, app *App, p apicall.Params, checkMode bool) (reconcile.Result, error) {
				return apicall.NewService(app.Client, app.Engine, app.Logger).Run(ctx, p, checkMode)
			}),
	)
}
