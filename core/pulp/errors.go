package pulp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for HTTP 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for HTTP 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport is returned for connection failures and other HTTP errors.
	ErrTransport = errors.New("transport error")
	// ErrUnavailable is returned by clients that have no server configured.
	ErrUnavailable = errors.New("pulp api unavailable")
	// ErrDryRun is returned when a mutating operation is attempted in dry run.
	ErrDryRun = errors.New("mutating call refused in dry run")
	// ErrUnknownOperation is returned for operation ids missing from the table.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Error describes a failed call.
type Error struct {
	// Op is the operation id.
	Op string
	// Status is the HTTP status code, 0 if no response was received.
	Status int
	// Detail is the server's error message, if any.
	Detail string
	// Kind is the sentinel error class.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := "pulp: " + e.Op
	if e.Status != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.Status)
	} else if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// StatusError builds an Error for an HTTP error status.
func StatusError(op string, status int, detail string) *Error {
	kind := ErrTransport
	switch status {
	case 404:
		kind = ErrNotFound
	case 401, 403:
		kind = ErrUnauthorized
	}
	return &Error{Op: op, Status: status, Detail: detail, Kind: kind}
}
