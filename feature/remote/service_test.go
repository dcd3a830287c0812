package remote

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"squeezer/core/pulp/pulptest"
	"squeezer/core/reconcile"
	"squeezer/core/tasks"
	"squeezer/core/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const pythonRemotes = pulptest.APIRoot + "api/v3/remotes/python/python/"

func newTestService(t *testing.T) (*Service, *pulptest.Fake) {
	t.Helper()
	fake := pulptest.New()
	engine := reconcile.NewEngine(tasks.NewAwaiter(fake, tasks.WithInterval(time.Millisecond)))
	return NewService(fake, engine, zap.NewNop()), fake
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateDebRemote(t *testing.T) {
	svc, fake := newTestService(t)
	p := Params{
		Plugin:        "deb",
		Name:          ptr("bookworm"),
		URL:           ptr("http://deb.debian.org/debian"),
		Distributions: ptr("bookworm"),
		Components:    ptr("main"),
		State:         "present",
	}

	result, err := svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	remote := result.Get("remote").(reconcile.Entity)
	assert.Equal(t, "bookworm", remote["distributions"])
	assert.Equal(t, "immediate", remote["policy"])
	assert.Equal(t, []string{"remotes_deb_apt_create"}, fake.Mutations())

	result, err = svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestService_UpdatesOnlyDifferingFields(t *testing.T) {
	svc, fake := newTestService(t)
	href := fake.Put(map[string]any{
		"pulp_href": pythonRemotes + "a/",
		"name":      "pypi",
		"url":       "https://pypi.org/",
		"policy":    "immediate",
		"includes":  []any{"django"},
	})

	p := Params{Name: ptr("pypi"), URL: ptr("https://pypi.org/"), Policy: ptr("on_demand"), Includes: []string{"django"}, State: "present"}

	result, err := svc.Run(context.Background(), p, true)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "on_demand", result.Get("remote").(reconcile.Entity)["policy"])
	assert.Empty(t, fake.Mutations())

	result, err = svc.Run(context.Background(), p, false)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	var patch *pulptest.Call
	for _, c := range fake.Calls() {
		if c.OperationID == "remotes_python_python_partial_update" {
			patch = &c
		}
	}
	require.NotNil(t, patch)
	assert.Equal(t, map[string]any{"policy": "on_demand"}, patch.Body)

	stored, _ := fake.Get(href)
	assert.Equal(t, "on_demand", stored["policy"])
}

func TestService_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		p    Params
		msg  string
	}{
		{"deb fields on python", Params{Name: ptr("a"), Distributions: ptr("bookworm")}, "distributions is not supported by the python plugin"},
		{"python fields on deb", Params{Plugin: "deb", Name: ptr("a"), Prereleases: ptr(true)}, "prereleases is not supported by the deb plugin"},
		{"bad policy", Params{Name: ptr("a"), Policy: ptr("lazy")}, "value of policy must be one of: immediate, on_demand, streamed, got: lazy"},
		{"absent without name", Params{State: "absent"}, "state is absent but all of the following are missing: name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tt.p, false)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.msg, verr.Msg)
		})
	}
}

func TestHandleRemote(t *testing.T) {
	svc, _ := newTestService(t)
	app := fiber.New()
	NewFeature(svc.client, svc.engine, zap.NewNop()).Load(app)

	req := httptest.NewRequest("POST", "/remote", strings.NewReader(`{"name": "pypi", "url": "https://pypi.org/", "state": "present"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
