package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"squeezer/core/pulp/pulptest"
	"squeezer/core/reconcile"
	"squeezer/core/tasks"

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

func run(t *testing.T, svc *Service, href, state string, checkMode bool) (reconcile.Result, error) {
	t.Helper()
	return svc.Run(context.Background(), Params{PulpHref: &href, State: state}, checkMode)
}

func TestService_Cancel(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateRunning)

	result, err := run(t, svc, href, "canceled", false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, tasks.StateCanceled, result.Get("task").(reconcile.Entity)["state"])
	assert.Equal(t, []string{"tasks_cancel"}, fake.Mutations())

	result, err = run(t, svc, href, "canceled", false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Len(t, fake.Mutations(), 1)
}

func TestService_CancelFinishedTaskIsNoop(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateCompleted)

	result, err := run(t, svc, href, "canceled", false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, tasks.StateCompleted, result.Get("task").(reconcile.Entity)["state"])
}

func TestService_Completed(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateWaiting)
	fake.Progress(href, tasks.StateWaiting, tasks.StateRunning, tasks.StateCompleted)

	result, err := run(t, svc, href, "completed", false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, tasks.StateCompleted, result.Get("task").(reconcile.Entity)["state"])
	assert.Empty(t, fake.Mutations())
}

func TestService_CompletedFailedTask(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateRunning)
	fake.Progress(href, tasks.StateRunning, tasks.StateFailed)

	_, err := run(t, svc, href, "completed", false)
	var failed *reconcile.TaskFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, href, failed.Href)
}

func TestService_CheckModeFakesState(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateRunning)

	for _, state := range []string{"canceled", "completed"} {
		result, err := run(t, svc, href, state, true)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, state, result.Get("task").(reconcile.Entity)["state"])
	}
	assert.Empty(t, fake.Mutations())

	stored, _ := fake.Get(href)
	assert.Equal(t, tasks.StateRunning, stored["state"])
}

func TestService_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := run(t, svc, pulptest.TasksPath+"missing/", "canceled", false)
	assert.True(t, errors.Is(err, reconcile.ErrNotFound))
}

func TestService_Absent(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.AddTask(tasks.StateCompleted)

	result, err := run(t, svc, href, "absent", false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Nil(t, result.Get("task"))

	result, err = run(t, svc, href, "absent", false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestService_List(t *testing.T) {
	svc, fake := newTestService(t)
	fake.AddTask(tasks.StateCompleted)
	fake.AddTask(tasks.StateFailed)

	result, err := svc.Run(context.Background(), Params{}, false)
	require.NoError(t, err)
	assert.Len(t, result.Get("tasks"), 2)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Params{}.Validate())
	assert.EqualError(t, Params{State: "present"}.Validate(), "value of state must be one of: absent, canceled, completed, got: present")
	assert.EqualError(t, Params{State: "canceled"}.Validate(), "state is canceled but all of the following are missing: pulp_href")
}
