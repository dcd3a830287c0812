package accesspolicy

import (
	"context"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"

	"go.uber.org/zap"
)

// Service reconciles access policies.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new access policy service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run reconciles the access policy described by p.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	inv := reconcile.Invocation{
		Key:     p.Key(),
		Desired: p.Desired(),
		State:   reconcile.State(p.State),
		DryRun:  checkMode,
	}
	target := reconcile.Target{Context: resource.New(s.client, resource.AccessPolicy)}
	return s.engine.Process(pulp.WithDryRun(ctx, checkMode), target, inv)
}
