package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"squeezer/core/pulp/pulptest"
	"squeezer/core/reconcile"
	"squeezer/core/tasks"
	"squeezer/core/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const debRepos = pulptest.APIRoot + "api/v3/repositories/deb/apt/"

func newTestService(t *testing.T) (*Service, *pulptest.Fake) {
	t.Helper()
	fake := pulptest.New()
	engine := reconcile.NewEngine(tasks.NewAwaiter(fake, tasks.WithInterval(time.Millisecond)))
	return NewService(fake, engine, zap.NewNop()), fake
}

func strPtr(s string) *string { return &s }

func TestService_CreateThenNoop(t *testing.T) {
	svc, fake := newTestService(t)
	p := Params{Plugin: "deb", Name: strPtr("repo1"), Description: strPtr("x"), State: "present"}

	result, err := svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	repo := result.Get("repository").(reconcile.Entity)
	assert.Equal(t, "x", repo["description"])
	assert.Equal(t, []string{"repositories_deb_apt_create"}, fake.Mutations())

	result, err = svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, repo, result.Get("repository"))
	assert.Len(t, fake.Mutations(), 1)
}

func TestService_EmptyDescriptionClears(t *testing.T) {
	svc, fake := newTestService(t)
	fake.Put(map[string]any{"pulp_href": debRepos + "a/", "name": "repo1", "description": "old"})

	result, err := svc.Run(context.Background(), Params{Plugin: "deb", Name: strPtr("repo1"), Description: strPtr(""), State: "present"}, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	stored, _ := fake.Get(debRepos + "a/")
	assert.Nil(t, stored["description"])
}

func TestService_Absent(t *testing.T) {
	svc, fake := newTestService(t)
	fake.Put(map[string]any{"pulp_href": debRepos + "a/", "name": "repo1"})

	result, err := svc.Run(context.Background(), Params{Plugin: "deb", Name: strPtr("repo1"), State: "absent"}, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Nil(t, result.Get("repository"))

	result, err = svc.Run(context.Background(), Params{Plugin: "deb"}, false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Get("repositories"))
}

func TestService_CheckMode(t *testing.T) {
	svc, fake := newTestService(t)

	result, err := svc.Run(context.Background(), Params{Name: strPtr("repo1"), Description: strPtr("x"), State: "present"}, true)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "repo1", result.Get("repository").(reconcile.Entity)["name"])
	assert.Empty(t, fake.Mutations())
}

func TestService_Remote(t *testing.T) {
	svc, fake := newTestService(t)
	remote := fake.Put(map[string]any{"pulp_href": pulptest.APIRoot + "api/v3/remotes/python/python/r/", "name": "pypi"})

	result, err := svc.Run(context.Background(), Params{Name: strPtr("repo1"), Remote: strPtr("pypi"), State: "present"}, false)
	require.NoError(t, err)
	assert.Equal(t, remote, result.Get("repository").(reconcile.Entity)["remote"])

	_, err = svc.Run(context.Background(), Params{Name: strPtr("repo1"), Remote: strPtr("missing"), State: "present"}, false)
	assert.True(t, errors.Is(err, reconcile.ErrNotFound))
}

func TestService_Validation(t *testing.T) {
	svc, fake := newTestService(t)

	tests := []struct {
		name string
		p    Params
		msg  string
	}{
		{"missing name", Params{State: "present"}, "state is present but all of the following are missing: name"},
		{"bad state", Params{Name: strPtr("a"), State: "canceled"}, "value of state must be one of: present, absent, got: canceled"},
		{"bad plugin", Params{Plugin: "rpm"}, "value of plugin must be one of: deb, python, got: rpm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tt.p, false)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.msg, verr.Msg)
		})
	}
	assert.Empty(t, fake.Calls())
}
