package accesspolicy

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

const policies = pulptest.APIRoot + "api/v3/access_policies/"

func newTestService(t *testing.T) (*Service, *pulptest.Fake) {
	t.Helper()
	fake := pulptest.New()
	fake.Put(map[string]any{
		"pulp_href":    policies + "1/",
		"viewset_name": "tasks",
		"statements": []any{
			map[string]any{"action": []any{"list"}, "principal": "authenticated", "effect": "allow"},
		},
		"creation_hooks": []any{},
	})
	engine := reconcile.NewEngine(tasks.NewAwaiter(fake, tasks.WithInterval(time.Millisecond)))
	return NewService(fake, engine, zap.NewNop()), fake
}

func TestService_PatchesStatements(t *testing.T) {
	svc, fake := newTestService(t)
	name := "tasks"
	p := Params{
		ViewsetName: &name,
		Statements: []Statement{
			{Action: StringList{"list"}, Principal: "authenticated", Effect: "allow"},
			{Action: StringList{"destroy"}, Principal: "admin", Effect: "deny"},
		},
		State: "present",
	}

	result, err := svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"access_policies_partial_update"}, fake.Mutations())

	stored, _ := fake.Get(policies + "1/")
	assert.Len(t, stored["statements"], 2)

	result, err = svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestService_UnchangedStatementsAreNoop(t *testing.T) {
	svc, fake := newTestService(t)
	name := "tasks"

	result, err := svc.Run(context.Background(), Params{
		ViewsetName: &name,
		Statements:  []Statement{{Action: StringList{"list"}, Principal: "authenticated", Effect: "allow"}},
		State:       "present",
	}, false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, fake.Mutations())
}

func TestService_CannotCreate(t *testing.T) {
	svc, fake := newTestService(t)
	name := "unknown"

	_, err := svc.Run(context.Background(), Params{ViewsetName: &name, State: "present"}, true)
	var unsupported *reconcile.UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Empty(t, fake.Mutations())
}

func TestService_Query(t *testing.T) {
	svc, _ := newTestService(t)
	name := "tasks"

	result, err := svc.Run(context.Background(), Params{ViewsetName: &name}, false)
	require.NoError(t, err)
	assert.Equal(t, "tasks", result.Get("access_policy").(reconcile.Entity)["viewset_name"])

	result, err = svc.Run(context.Background(), Params{}, false)
	require.NoError(t, err)
	assert.Len(t, result.Get("access_policies"), 1)
}
