package apicall

import (
	"context"
	"errors"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/validate"

	"go.uber.org/zap"
)

var kind = reconcile.Kind{Singular: "api_call", Plural: "api_calls"}

// Service performs raw API calls.
type Service struct {
	client pulp.Client
	engine *reconcile.Engine
	logger *zap.Logger
}

// NewService creates a new API call service.
func NewService(client pulp.Client, engine *reconcile.Engine, logger *zap.Logger) *Service {
	return &Service{client: client, engine: engine, logger: logger}
}

// Run calls the operation named in p and reports its response.
func (s *Service) Run(ctx context.Context, p Params, checkMode bool) (reconcile.Result, error) {
	if err := p.Validate(); err != nil {
		return reconcile.Result{}, err
	}
	op, ok := s.client.Operation(p.OperationID)
	if !ok {
		return reconcile.Result{}, validate.Errorf("unknown operation_id: %s", p.OperationID)
	}

	var body any
	if p.Body != nil {
		body = p.Body
	}
	inv := reconcile.Invocation{Key: reconcile.KeyOf("operation_id", op.ID), DryRun: checkMode}

	return s.engine.Do(pulp.WithDryRun(ctx, checkMode), kind, inv, func(ctx context.Context, run *reconcile.Run) error {
		if !op.Safe() {
			run.Reporter.SetChanged()
		}
		response, err := s.client.Call(ctx, op.ID, p.Parameters, body)
		if err != nil {
			if !run.DryRun || !errors.Is(err, pulp.ErrDryRun) {
				return err
			}
			response = nil
		}
		run.Reporter.Set("response", response)
		return nil
	})
}
