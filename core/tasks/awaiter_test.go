package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"squeezer/core/pulp"
	"squeezer/core/pulp/pulptest"
	"squeezer/core/reconcile"
	"squeezer/core/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastAwaiter(client pulp.Client, opts ...tasks.Option) *tasks.Awaiter {
	base := []tasks.Option{tasks.WithInterval(time.Millisecond), tasks.WithMaxInterval(2 * time.Millisecond)}
	return tasks.NewAwaiter(client, append(base, opts...)...)
}

func TestAwait_Completes(t *testing.T) {
	fake := pulptest.New()
	href := fake.AddTask("waiting", "/pulp/api/v3/repositories/deb/apt/1/versions/1/")
	fake.Progress(href, "waiting", "running", "completed")

	task, err := fastAwaiter(fake).Await(context.Background(), href)
	require.NoError(t, err)
	assert.Equal(t, "completed", task["state"])
	assert.Equal(t, []any{"/pulp/api/v3/repositories/deb/apt/1/versions/1/"}, task["created_resources"])
	assert.Len(t, fake.Calls(), 3)
}

func TestAwait_Failed(t *testing.T) {
	tests := []struct {
		name      string
		state     string
		wantState string
	}{
		{"failed", "failed", "failed"},
		{"canceled", "canceled", "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := pulptest.New()
			href := fake.AddTask("running")
			fake.Progress(href, "running", tt.state)

			_, err := fastAwaiter(fake).Await(context.Background(), href)
			var failed *reconcile.TaskFailedError
			require.True(t, errors.As(err, &failed))
			assert.Equal(t, href, failed.Href)
			assert.Equal(t, tt.wantState, failed.State)
		})
	}
}

func TestAwait_FailedCarriesDescription(t *testing.T) {
	fake := pulptest.New()
	href := fake.AddTask("failed")

	_, err := fastAwaiter(fake).Await(context.Background(), href)
	assert.ErrorContains(t, err, "fake failure")
}

func TestAwait_Timeout(t *testing.T) {
	fake := pulptest.New()
	href := fake.AddTask("running")

	_, err := fastAwaiter(fake, tasks.WithTimeout(20*time.Millisecond)).Await(context.Background(), href)
	assert.ErrorIs(t, err, reconcile.ErrTaskTimeout)
}

func TestAwait_ContextDeadline(t *testing.T) {
	fake := pulptest.New()
	href := fake.AddTask("running")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := fastAwaiter(fake).Await(ctx, href)
	assert.ErrorIs(t, err, reconcile.ErrTaskTimeout)
}

func TestAwait_ReadErrorIsNotRetried(t *testing.T) {
	fake := pulptest.New()
	href := fake.AddTask("running")
	fake.Fail("tasks_read", pulp.StatusError("tasks_read", 502, "bad gateway"))

	_, err := fastAwaiter(fake).Await(context.Background(), href)
	assert.ErrorIs(t, err, pulp.ErrTransport)
	assert.Len(t, fake.Calls(), 1)
}

func TestAwait_MissingTask(t *testing.T) {
	_, err := fastAwaiter(pulptest.New()).Await(context.Background(), pulptest.TasksPath+"nope/")
	assert.ErrorIs(t, err, reconcile.ErrNotFound)
}

func TestFromConfig(t *testing.T) {
	fake := pulptest.New()
	href := fake.AddTask("completed")

	a := tasks.FromConfig(fake, pulp.Config{TaskPollMillis: 1}, nil)
	task, err := a.Await(context.Background(), href)
	require.NoError(t, err)
	assert.Equal(t, href, task.Href())
}

func TestStates(t *testing.T) {
	assert.True(t, tasks.IsFinal(tasks.StateCompleted))
	assert.False(t, tasks.IsFinal(tasks.StateCanceling))
	assert.True(t, tasks.IsActive(tasks.StateCanceling))
	assert.False(t, tasks.IsActive(tasks.StateFailed))
}
