package reconcile

import (
	"context"
	"time"
)

// Record describes one finished invocation for observers.
type Record struct {
	ID       string
	Kind     Kind
	Key      NaturalKey
	State    State
	Action   ActionType
	DryRun   bool
	Changed  bool
	Err      error
	Started  time.Time
	Duration time.Duration
	Result   Result
}

// Failed reports whether the invocation ended with an error.
func (r Record) Failed() bool {
	return r.Err != nil
}

// Observer receives a Record after every invocation.
// Observer errors are logged and never change the invocation outcome.
type Observer interface {
	Observe(ctx context.Context, rec Record) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, rec Record) error

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, rec Record) error {
	return f(ctx, rec)
}
