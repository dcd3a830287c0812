package remote

import (
	"context"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"

	"go.uber.org/zap"
)

// Service reconciles remotes.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new remote service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run reconciles the remote described by p.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	def, err := resource.For(p.plugin(), "remote")
	if err != nil {
		return reconcile.Result{}, err
	}

	inv := reconcile.Invocation{
		Key:     p.Key(),
		Desired: p.Desired(),
		State:   reconcile.State(p.State),
		DryRun:  checkMode,
	}
	return s.engine.Process(pulp.WithDryRun(ctx, checkMode), reconcile.Target{Context: resource.New(s.client, def)}, inv)
}
