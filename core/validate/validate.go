// Package validate checks module parameters before any server call.
package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a parameter validation failure.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf formats a validation Error.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Required fails when any of the named fields is missing.
// present maps field names to whether they were given.
func Required(reason string, present map[string]bool) error {
	var missing []string
	for name, ok := range present {
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return Errorf("%s but all of the following are missing: %s", reason, strings.Join(missing, ", "))
}

// RequiredIf applies Required only when cond holds.
func RequiredIf(cond bool, reason string, present map[string]bool) error {
	if !cond {
		return nil
	}
	return Required(reason, present)
}

// OneOf fails when value is not one of choices.
func OneOf(field, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return Errorf("value of %s must be one of: %s, got: %s", field, strings.Join(choices, ", "), value)
}

// Join returns the first non-nil error.
func Join(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
