package pulp

import "context"

// Unavailable is a Client for when no server is configured. Every call
// fails with ErrUnavailable; the operation table stays browsable.
type Unavailable struct {
	Reason string
}

// Call always fails.
func (u Unavailable) Call(ctx context.Context, operationID string, params map[string]any, body any) (any, error) {
	return nil, &Error{Op: operationID, Kind: ErrUnavailable, Detail: u.Reason}
}

// Operation describes an operation id.
func (u Unavailable) Operation(operationID string) (Operation, bool) {
	return LookupOperation(operationID)
}
