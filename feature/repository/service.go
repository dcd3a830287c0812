package repository

import (
	"context"
	"fmt"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"

	"go.uber.org/zap"
)

// Service reconciles repositories.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new repository service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run reconciles the repository described by p.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	def, err := resource.For(p.plugin(), "repository")
	if err != nil {
		return reconcile.Result{}, err
	}
	ctx = pulp.WithDryRun(ctx, checkMode)

	desired := p.Desired()
	if p.Remote != nil {
		href, err := s.remoteHref(ctx, p.plugin(), *p.Remote)
		if err != nil {
			return reconcile.Result{}, err
		}
		desired["remote"] = href
	}

	inv := reconcile.Invocation{
		Key:     p.Key(),
		Desired: desired,
		State:   reconcile.State(p.State),
		DryRun:  checkMode,
	}
	return s.engine.Process(ctx, reconcile.Target{Context: resource.New(s.client, def)}, inv)
}

func (s *Service) remoteHref(ctx context.Context, plugin, name string) (any, error) {
	if name == "" {
		return nil, nil
	}
	def, err := resource.For(plugin, "remote")
	if err != nil {
		return nil, err
	}
	remote, err := reconcile.Resolve(ctx, resource.New(s.client, def), reconcile.KeyOf("name", name))
	if err != nil {
		return nil, fmt.Errorf("remote %q: %w", name, err)
	}
	return remote.Href(), nil
}
