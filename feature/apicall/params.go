package apicall

import "squeezer/core/validate"

// Params are the module parameters.
type Params struct {
	// OperationID names the operation, e.g. "status_read".
	OperationID string `json:"operation_id" yaml:"operation_id"`
	// Parameters fill the operation's path and query.
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
	// Body is sent as the JSON request body.
	Body map[string]any `json:"body" yaml:"body"`
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.OperationID == "" {
		return validate.Errorf("missing required arguments: operation_id")
	}
	return nil
}
