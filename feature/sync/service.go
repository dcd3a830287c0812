package sync

import (
	"context"
	"errors"
	"fmt"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"
	"squeezer/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoRemote is wrapped in the PreconditionError reported when there is
// nothing to sync from.
var ErrNoRemote = errors.New("No remote was specified and none preconfigured on the repository.")

var kind = reconcile.Kind{Singular: "sync", Plural: "syncs"}

// Service runs syncs.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new sync service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run syncs the repository named in p.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	repoDef, err := resource.For(p.plugin(), "repository")
	if err != nil {
		return reconcile.Result{}, err
	}
	remoteDef, err := resource.For(p.plugin(), "remote")
	if err != nil {
		return reconcile.Result{}, err
	}
	repos := resource.New(s.client, repoDef)
	remotes := resource.New(s.client, remoteDef)

	inv := reconcile.Invocation{
		Key:    reconcile.KeyOf("repository", p.Repository).With("remote", nilIfEmpty(p.Remote)),
		DryRun: checkMode,
	}
	return s.engine.Do(pulp.WithDryRun(ctx, checkMode), kind, inv, func(ctx context.Context, run *reconcile.Run) error {
		var repo, remote reconcile.Entity

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			e, err := reconcile.Resolve(gctx, repos, reconcile.KeyOf("name", p.Repository))
			if err != nil {
				return fmt.Errorf("repository %q: %w", p.Repository, err)
			}
			repo = e
			return nil
		})
		if p.Remote != "" {
			g.Go(func() error {
				e, err := reconcile.Resolve(gctx, remotes, reconcile.KeyOf("name", p.Remote))
				if err != nil {
					return fmt.Errorf("remote %q: %w", p.Remote, err)
				}
				remote = e
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		body := map[string]any{}
		if remote != nil {
			body["remote"] = remote.Href()
		} else if repo["remote"] == nil {
			return reconcile.Preconditionf("%w", ErrNoRemote)
		}
		if p.Mirror != nil {
			body["mirror"] = *p.Mirror
		}

		version := repo["latest_version_href"]
		if !run.DryRun {
			resp, err := repos.Invoke(ctx, "sync", repo.Href(), body)
			if err != nil {
				return err
			}
			if resp.Pending() {
				task, err := run.Await(ctx, resp.TaskHref)
				if err != nil {
					return err
				}
				if created := utils.FirstString(task["created_resources"]); created != "" {
					run.Reporter.SetChanged()
					version = created
				}
			}
		}
		run.Reporter.Set("repository_version", version)
		return nil
	})
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
