package apicall

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"squeezer/core/pulp"
	"squeezer/core/pulp/pulptest"
	"squeezer/core/reconcile"
	"squeezer/core/tasks"
	"squeezer/core/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *pulptest.Fake) {
	t.Helper()
	fake := pulptest.New()
	engine := reconcile.NewEngine(tasks.NewAwaiter(fake, tasks.WithInterval(time.Millisecond)))
	return NewService(fake, engine, zap.NewNop()), fake
}

func TestService_SafeCallIsUnchanged(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateCompleted)

	result, err := svc.Run(context.Background(), Params{OperationID: "tasks_read", Parameters: map[string]any{"task_href": href}}, false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, href, result.Get("response").(map[string]any)["pulp_href"])
}

func TestService_MutatingCall(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateCompleted)
	params := map[string]any{"task_href": href}

	result, err := svc.Run(context.Background(), Params{OperationID: "tasks_delete", Parameters: params}, true)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Nil(t, result.Get("response"))
	assert.Contains(t, result.Keys(), "response")
	assert.Empty(t, fake.Mutations())

	result, err = svc.Run(context.Background(), Params{OperationID: "tasks_delete", Parameters: params}, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"tasks_delete"}, fake.Mutations())
	_, ok := fake.Get(href)
	assert.False(t, ok)
}

func TestService_UnknownOperation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Run(context.Background(), Params{OperationID: "nope"}, false)
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "unknown operation_id: nope", verr.Msg)

	_, err = svc.Run(context.Background(), Params{}, false)
	assert.EqualError(t, err, "missing required arguments: operation_id")
}

func TestService_ServerError(t *testing.T) {
	svc, fake := newTestService(t)
	fake.Fail("status_read", pulp.StatusError("status_read", http.StatusInternalServerError, "boom"))

	_, err := svc.Run(context.Background(), Params{OperationID: "status_read"}, false)
	assert.True(t, errors.Is(err, pulp.ErrTransport))
}
