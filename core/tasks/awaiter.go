package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/resource"
	"squeezer/core/utils"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// Task states reported by the server.
const (
	StateWaiting   = "waiting"
	StateSkipped   = "skipped"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
	StateCanceled  = "canceled"
	StateCanceling = "canceling"
)

// forever stands in for "no timeout" since the backoff package needs a bound.
const forever = 100 * 365 * 24 * time.Hour

var errPending = errors.New("task still pending")

// IsFinal reports whether a task in state will not change any more.
func IsFinal(state string) bool {
	switch state {
	case StateCompleted, StateFailed, StateCanceled, StateSkipped:
		return true
	default:
		return false
	}
}

// IsActive reports whether a task in state is queued or executing.
func IsActive(state string) bool {
	switch state {
	case StateWaiting, StateRunning, StateCanceling:
		return true
	default:
		return false
	}
}

// Awaiter polls tasks until they finish.
type Awaiter struct {
	tasks       *resource.Context
	logger      *zap.Logger
	timeout     time.Duration
	interval    time.Duration
	maxInterval time.Duration
}

// Option configures an Awaiter.
type Option func(*Awaiter)

// WithTimeout bounds the total wait. Zero or less waits until the task ends.
func WithTimeout(d time.Duration) Option {
	return func(a *Awaiter) {
		a.timeout = d
	}
}

// WithInterval sets the first polling interval.
func WithInterval(d time.Duration) Option {
	return func(a *Awaiter) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithMaxInterval caps the polling interval.
func WithMaxInterval(d time.Duration) Option {
	return func(a *Awaiter) {
		if d > 0 {
			a.maxInterval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Awaiter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAwaiter creates an awaiter reading tasks through client.
func NewAwaiter(client pulp.Client, opts ...Option) *Awaiter {
	a := &Awaiter{
		tasks:       resource.New(client, resource.Task),
		logger:      zap.NewNop(),
		interval:    500 * time.Millisecond,
		maxInterval: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.maxInterval < a.interval {
		a.maxInterval = a.interval
	}
	return a
}

// FromConfig creates an awaiter using the task settings of cfg.
func FromConfig(client pulp.Client, cfg pulp.Config, logger *zap.Logger) *Awaiter {
	return NewAwaiter(client,
		WithTimeout(time.Duration(cfg.TaskTimeoutSeconds)*time.Second),
		WithInterval(time.Duration(cfg.TaskPollMillis)*time.Millisecond),
		WithLogger(logger),
	)
}

// Await blocks until the task at href is final and returns it.
func (a *Awaiter) Await(ctx context.Context, href string) (reconcile.Entity, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.interval
	b.MaxInterval = a.maxInterval
	b.Multiplier = 1.5
	b.RandomizationFactor = 0.1

	timeout := a.timeout
	if timeout <= 0 {
		timeout = forever
	}

	last := ""
	poll := func() (reconcile.Entity, error) {
		task, err := a.tasks.Read(ctx, href)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		state := utils.ToString(task["state"])
		if state != last {
			a.logger.Debug("Task state", zap.String("task", href), zap.String("state", state))
			last = state
		}
		switch state {
		case StateCompleted, StateSkipped:
			return task, nil
		case StateFailed, StateCanceled:
			return nil, backoff.Permanent(&reconcile.TaskFailedError{Href: href, State: state, Task: task})
		default:
			return nil, errPending
		}
	}

	task, err := backoff.Retry(ctx, poll, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(timeout))
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, errPending):
		return nil, fmt.Errorf("%w: %s still %s after %s", reconcile.ErrTaskTimeout, href, last, timeout)
	case errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %s: %w", reconcile.ErrTaskTimeout, href, err)
	default:
		return nil, err
	}
}
