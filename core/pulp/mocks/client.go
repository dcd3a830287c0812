package mocks

import (
	"context"

	"squeezer/core/pulp"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of pulp.Client
type Client struct {
	mock.Mock
}

func (m *Client) Call(ctx context.Context, operationID string, params map[string]any, body any) (any, error) {
	args := m.Called(ctx, operationID, params, body)
	return args.Get(0), args.Error(1)
}

func (m *Client) Operation(operationID string) (pulp.Operation, bool) {
	if op, ok := pulp.LookupOperation(operationID); ok {
		return op, true
	}
	return pulp.Operation{}, false
}
