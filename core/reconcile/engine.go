package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"squeezer/core/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine drives invocations through the reconciliation state machine and
// reports every finished invocation to its observers.
type Engine struct {
	awaiter   Awaiter
	logger    *zap.Logger
	observers []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObservers adds invocation observers.
func WithObservers(obs ...Observer) Option {
	return func(e *Engine) {
		for _, o := range obs {
			if o != nil {
				e.observers = append(e.observers, o)
			}
		}
	}
}

// NewEngine creates an engine that waits on tasks with awaiter.
func NewEngine(awaiter Awaiter, opts ...Option) *Engine {
	e := &Engine{awaiter: awaiter, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run is the per-invocation state handed to actions and special handlers.
type Run struct {
	Invocation

	// ID uniquely identifies the invocation in logs and records.
	ID string
	// Kind is the entity type being acted on.
	Kind Kind
	// Reporter collects the invocation outcome.
	Reporter *Reporter
	// Context is the entity context, nil for plain actions.
	Context EntityContext
	// Lookup memoizes the key resolution, nil for plain actions.
	Lookup *Lookup

	action ActionType
	engine *Engine
	logger *zap.Logger
}

// SetAction records the action taken, for logs and observers.
func (r *Run) SetAction(a ActionType) {
	r.action = a
}

// Action returns the recorded action.
func (r *Run) Action() ActionType {
	return r.action
}

// Logger returns a logger scoped to the invocation.
func (r *Run) Logger() *zap.Logger {
	return r.logger
}

// Await blocks until the task at href is finished and returns it.
func (r *Run) Await(ctx context.Context, href string) (Entity, error) {
	if r.engine.awaiter == nil {
		return nil, fmt.Errorf("no task awaiter configured for %s", href)
	}
	r.logger.Debug("Waiting for task", zap.String("task", href))
	return r.engine.awaiter.Await(ctx, href)
}

// ActionFunc is a module operation executed inside an invocation.
type ActionFunc func(ctx context.Context, run *Run) error

// Do runs fn as one invocation of kind and returns its outcome.
// The record of the invocation is always delivered to observers.
func (e *Engine) Do(ctx context.Context, kind Kind, inv Invocation, fn ActionFunc) (Result, error) {
	return e.do(ctx, kind, inv, func(ctx context.Context, run *Run) error {
		run.action = ActionInvoke
		return fn(ctx, run)
	})
}

// Process reconciles the target's entity towards the invocation's state.
func (e *Engine) Process(ctx context.Context, target Target, inv Invocation) (Result, error) {
	if target.Context == nil {
		return Result{}, errors.New("target has no entity context")
	}
	return e.do(ctx, target.Context.Kind(), inv, func(ctx context.Context, run *Run) error {
		run.Context = target.Context
		run.Lookup = NewLookup(target.Context, inv.Key)
		return e.reconcile(ctx, run, target.Special)
	})
}

func (e *Engine) do(ctx context.Context, kind Kind, inv Invocation, fn ActionFunc) (Result, error) {
	id := uuid.NewString()
	run := &Run{
		Invocation: inv,
		ID:         id,
		Kind:       kind,
		Reporter:   NewReporter(),
		engine:     e,
		logger: e.logger.With(
			zap.String("invocation", id),
			zap.String("entity", kind.Singular),
		),
	}

	start := time.Now()
	err := fn(ctx, run)
	duration := time.Since(start)

	result := run.Reporter.Result()
	rec := Record{
		ID:       id,
		Kind:     kind,
		Key:      inv.Key,
		State:    inv.State,
		Action:   run.action,
		DryRun:   inv.DryRun,
		Changed:  result.Changed,
		Err:      err,
		Started:  start,
		Duration: duration,
		Result:   result,
	}

	fields := []zap.Field{
		zap.String("key", inv.Key.String()),
		zap.String("state", string(inv.State)),
		zap.String("action", string(run.action)),
		zap.Bool("dry_run", inv.DryRun),
		zap.Bool("changed", result.Changed),
		zap.Duration("duration", duration),
	}
	if err != nil {
		run.logger.Error("Invocation failed", append(fields, zap.Error(err))...)
	} else {
		run.logger.Info("Invocation finished", fields...)
	}

	for _, o := range e.observers {
		if oerr := o.Observe(ctx, rec); oerr != nil {
			run.logger.Warn("Observer failed", zap.Error(oerr))
		}
	}

	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (e *Engine) reconcile(ctx context.Context, run *Run, special map[State]SpecialFunc) error {
	inv := run.Invocation
	ec := run.Context
	kind := run.Kind

	if inv.Key.IsListMode() {
		if inv.State != StateQuery && inv.State != StatePresent {
			return Preconditionf("state %q requires identifying the %s", inv.State, kind.Singular)
		}
		run.action = ActionList
		entities, err := ec.List(ctx, nil)
		if err != nil {
			return err
		}
		if entities == nil {
			entities = []Entity{}
		}
		run.Reporter.Set(kind.Plural, entities)
		return nil
	}

	entity, err := run.Lookup.Entity(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if inv.State.IsSpecial() {
		handler, ok := special[inv.State]
		if !ok {
			return Preconditionf("state %q is not supported for %s", inv.State, kind.Singular)
		}
		if entity == nil {
			return fmt.Errorf("%s %s: %w", kind.Singular, inv.Key, ErrNotFound)
		}
		run.action = ActionSpecial
		result, err := handler(ctx, run, entity)
		if err != nil {
			return err
		}
		run.Reporter.Set(kind.Singular, result)
		return nil
	}

	plan, err := Decide(inv, entity)
	if err != nil {
		return err
	}
	run.action = plan.Action
	run.logger.Debug("Planned", zap.String("action", string(plan.Action)), zap.String("reason", plan.Reason))

	switch plan.Action {
	case ActionCreate:
		if !ec.Supports(ActionCreate) {
			return &UnsupportedError{Kind: kind, Action: ActionCreate}
		}
		entity, err = e.create(ctx, run, plan.Changes)
	case ActionUpdate:
		if !ec.Supports(ActionUpdate) {
			return &UnsupportedError{Kind: kind, Action: ActionUpdate}
		}
		entity, err = e.update(ctx, run, entity, plan.Changes)
	case ActionDelete:
		if !ec.Supports(ActionDelete) {
			return &UnsupportedError{Kind: kind, Action: ActionDelete}
		}
		entity, err = e.delete(ctx, run, entity)
	case ActionNoop:
		if inv.State == StateAbsent {
			entity = nil
		}
	}
	if err != nil {
		return err
	}

	if entity == nil {
		run.Reporter.Set(kind.Singular, nil)
	} else {
		run.Reporter.Set(kind.Singular, entity)
	}
	return nil
}

func (e *Engine) create(ctx context.Context, run *Run, body Attributes) (Entity, error) {
	run.Reporter.SetChanged()
	if run.DryRun {
		return Synthesize(nil, run.Key, body), nil
	}

	resp, err := run.Context.Create(ctx, body)
	if err != nil {
		return nil, err
	}
	entity, err := e.settle(ctx, run, resp, "")
	if err != nil {
		return nil, err
	}
	run.Lookup.Set(entity)
	return entity, nil
}

func (e *Engine) update(ctx context.Context, run *Run, entity Entity, changes Attributes) (Entity, error) {
	run.Reporter.SetChanged()
	if run.DryRun {
		return Synthesize(entity, nil, changes), nil
	}

	resp, err := run.Context.Update(ctx, entity.Href(), changes)
	if err != nil {
		return nil, err
	}
	updated, err := e.settle(ctx, run, resp, entity.Href())
	if err != nil {
		return nil, err
	}
	run.Lookup.Set(updated)
	return updated, nil
}

func (e *Engine) delete(ctx context.Context, run *Run, entity Entity) (Entity, error) {
	run.Reporter.SetChanged()
	if run.DryRun {
		return nil, nil
	}

	resp, err := run.Context.Delete(ctx, entity.Href())
	if err != nil {
		return nil, err
	}
	if resp.Pending() {
		if _, err := run.Await(ctx, resp.TaskHref); err != nil {
			return nil, err
		}
	}
	run.Lookup.Set(nil)
	return nil, nil
}

// settle turns a mutation response into the current entity. A task is
// awaited first; the entity is then re-read from href, or from the first
// resource the task created when href is empty.
func (e *Engine) settle(ctx context.Context, run *Run, resp Response, href string) (Entity, error) {
	if !resp.Pending() {
		if resp.Entity != nil {
			return resp.Entity, nil
		}
		if href == "" {
			return nil, nil
		}
		return run.Context.Read(ctx, href)
	}

	task, err := run.Await(ctx, resp.TaskHref)
	if err != nil {
		return nil, err
	}
	if href == "" {
		href = utils.FirstString(task["created_resources"])
		if href == "" {
			return nil, fmt.Errorf("task %s created no %s", resp.TaskHref, run.Kind.Singular)
		}
	}
	return run.Context.Read(ctx, href)
}
