package reconcile

import (
	"errors"
	"fmt"

	"squeezer/core/utils"
)

var (
	// ErrNotFound is returned when no entity matches a key or href.
	ErrNotFound = errors.New("entity not found")
	// ErrTaskTimeout is returned when a task does not finish in time.
	ErrTaskTimeout = errors.New("timed out waiting for task")
)

// AmbiguousMatchError is returned when a natural key matches several entities.
type AmbiguousMatchError struct {
	Kind  Kind
	Key   NaturalKey
	Count int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%d %s match %s, expected at most one", e.Count, e.Kind.Plural, e.Key)
}

// TaskFailedError is returned when a task ends failed or canceled.
type TaskFailedError struct {
	Href  string
	State string
	Task  Entity
}

func (e *TaskFailedError) Error() string {
	msg := fmt.Sprintf("task %s ended %s", e.Href, e.State)
	if desc := e.Description(); desc != "" {
		msg += ": " + desc
	}
	return msg
}

// Description returns the server's error description, if any.
func (e *TaskFailedError) Description() string {
	if e.Task == nil {
		return ""
	}
	if detail, ok := e.Task["error"].(map[string]any); ok {
		return utils.ToString(detail["description"])
	}
	return ""
}

// PreconditionError is returned when an invocation cannot proceed as asked.
type PreconditionError struct {
	Msg string
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Preconditionf formats a PreconditionError. A %w verb sets its Err.
func Preconditionf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &PreconditionError{Msg: err.Error(), Err: errors.Unwrap(err)}
}

// UnsupportedError is returned when the server does not offer a needed mutation.
type UnsupportedError struct {
	Kind   Kind
	Action ActionType
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Kind.Singular, e.Action)
}
