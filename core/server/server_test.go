package server

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"squeezer/core/loader"
	"squeezer/core/pulp"
	"squeezer/core/reconcile"
	"squeezer/core/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validate.Errorf("bad"), 400},
		{"not found", fmt.Errorf("task x: %w", reconcile.ErrNotFound), 404},
		{"precondition", reconcile.Preconditionf("no remote"), 409},
		{"ambiguous", &reconcile.AmbiguousMatchError{Count: 2}, 409},
		{"unsupported", &reconcile.UnsupportedError{Action: reconcile.ActionCreate}, 409},
		{"timeout", fmt.Errorf("await: %w", reconcile.ErrTaskTimeout), 504},
		{"task failed", &reconcile.TaskFailedError{Href: "/t/", State: "failed"}, 502},
		{"transport", pulp.StatusError("op", 500, "boom"), 502},
		{"unauthorized", pulp.StatusError("op", 401, ""), 502},
		{"unavailable", &pulp.Error{Op: "op", Kind: pulp.ErrUnavailable}, 503},
		{"other", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestCheckMode(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprint(CheckMode(c)))
	})

	for query, want := range map[string]string{"": "false", "?check_mode=true": "true", "?check_mode=1": "true", "?check_mode=no": "false"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, want, string(body), query)
	}
}

type echoFeature struct{}

func (echoFeature) Name() string    { return "echo" }
func (echoFeature) IsEnabled() bool { return true }
func (echoFeature) Load(app fiber.Router) error {
	app.Post("/echo", func(c *fiber.Ctx) error {
		var p struct {
			Name string `json:"name"`
		}
		if err := ParseParams(c, &p); err != nil {
			return Respond(c, reconcile.Result{}, err)
		}
		if p.Name == "" {
			return Respond(c, reconcile.Result{}, reconcile.Preconditionf("no name"))
		}
		return Respond(c, reconcile.Result{Changed: true, Values: map[string]any{"name": p.Name}}, nil)
	})
	return nil
}

func newTestApp(t *testing.T, apiKey string) *fiber.App {
	t.Helper()
	mgr := loader.NewManager()
	mgr.Register(echoFeature{})
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "squeezer_test_total"}))

	app, err := NewApp(Config{ApiKey: apiKey, Metrics: true}, zap.NewNop(), reg, mgr)
	require.NoError(t, err)
	return app
}

func TestNewApp_Routes(t *testing.T) {
	app := newTestApp(t, "")

	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"name": "repo1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"changed": true, "name": "repo1"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	req = httptest.NewRequest("POST", "/echo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"failed": true, "changed": false, "msg": "no name"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "squeezer_test_total")
}

func TestNewApp_Auth(t *testing.T) {
	app := newTestApp(t, "secret")

	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"name": "a"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("POST", "/echo", strings.NewReader(`{"name": "a"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// metrics stay public
	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
