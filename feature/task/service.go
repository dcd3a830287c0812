package task

import (
	"context"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"
	"squeezer/core/tasks"
	"squeezer/core/utils"

	"go.uber.org/zap"
)

// Service reconciles tasks.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new task service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run reconciles the task described by p.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	ec := resource.New(s.client, resource.Task)
	target := reconcile.Target{
		Context: ec,
		Special: map[reconcile.State]reconcile.SpecialFunc{
			reconcile.StateCanceled:  finish(ec, reconcile.StateCanceled),
			reconcile.StateCompleted: finish(ec, reconcile.StateCompleted),
		},
	}
	inv := reconcile.Invocation{
		Key:    p.Key(),
		State:  reconcile.State(p.State),
		DryRun: checkMode,
	}
	return s.engine.Process(pulp.WithDryRun(ctx, checkMode), target, inv)
}

// finish drives an active task to state. In check mode the reported task
// only pretends to have reached it.
func finish(ec *resource.Context, state reconcile.State) reconcile.SpecialFunc {
	return func(ctx context.Context, run *reconcile.Run, entity reconcile.Entity) (reconcile.Entity, error) {
		if !tasks.IsActive(utils.ToString(entity["state"])) {
			return entity, nil
		}
		run.Reporter.SetChanged()

		if run.DryRun {
			faked := entity.Clone()
			faked["state"] = string(state)
			return faked, nil
		}

		if state == reconcile.StateCompleted {
			return run.Await(ctx, entity.Href())
		}
		resp, err := ec.Invoke(ctx, "cancel", entity.Href(), map[string]any{"state": tasks.StateCanceled})
		if err != nil {
			return nil, err
		}
		if resp.Entity != nil {
			return resp.Entity, nil
		}
		return ec.Read(ctx, entity.Href())
	}
}
