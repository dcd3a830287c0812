package integrity

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"squeezer/core/database"
	"squeezer/core/pulp"
	"squeezer/core/pulp/pulptest"
	"squeezer/core/storage/mocks"
	"squeezer/feature/integrity/checks"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const archivePrefix = "invocations"

func newFake() *pulptest.Fake {
	fake := pulptest.New()
	fake.Handle("status_read", func(*pulptest.Fake, pulp.Operation, map[string]any, map[string]any) (any, error) {
		return map[string]any{
			"versions": []any{
				map[string]any{"component": "core", "version": "3.49.0"},
				map[string]any{"component": "deb", "version": "3.2.0"},
				map[string]any{"component": "python", "version": "3.11.0"},
			},
			"online_workers":      []any{map[string]any{"name": "w1"}},
			"database_connection": map[string]any{"connected": true},
		}, nil
	})
	return fake
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return resp.StatusCode, out
}

func TestService_AllDisabledBackends(t *testing.T) {
	svc := NewService(newFake(), nil, nil, archivePrefix, zap.NewNop())

	report := svc.All(context.Background())
	assert.Equal(t, map[string]any{"status": "disabled"}, report["history"])
	assert.Equal(t, map[string]any{"status": "disabled"}, report["archive"])
	require.IsType(t, &checks.PulpReport{}, report["pulp"])
	assert.Empty(t, report["pulp"].(*checks.PulpReport).MissingComponents)
	assert.ErrorIs(t, svc.FixArchive(context.Background()), ErrDisabled)
}

func TestService_AllWithBackends(t *testing.T) {
	db, err := database.Connect(database.Config{Enabled: true, Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.NewHistory(db).Migrate(context.Background()))

	store := &mocks.Bucket{BucketName: "results"}
	store.On("Exists", mock.Anything).Return(false, nil)

	fake := pulptest.New()
	fake.Fail("status_read", pulp.StatusError("status_read", 502, "bad gateway"))

	report := NewService(fake, db, store, archivePrefix, zap.NewNop()).All(context.Background())
	assert.Equal(t, "ok", report["history"].(*checks.HistoryReport).Status)
	assert.False(t, report["archive"].(*checks.ArchiveReport).Exists)
	assert.Equal(t, "error", report["pulp"].(map[string]any)["status"])
}

func TestHandler(t *testing.T) {
	store := &mocks.Bucket{BucketName: "results"}
	store.On("Exists", mock.Anything).Return(false, nil)
	store.On("Create", mock.Anything).Return(nil).Once()

	app := fiber.New()
	require.NoError(t, NewFeature(newFake(), nil, store, archivePrefix, zap.NewNop()).Load(app))

	status, body := get(t, app, "/integrity/pulp")
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(1), body["online_workers"])
	assert.Equal(t, "3.2.0", body["versions"].(map[string]any)["deb"])

	status, body = get(t, app, "/integrity/history")
	assert.Equal(t, 404, status)
	assert.Contains(t, body["error"], "disabled")

	status, body = get(t, app, "/integrity/archive")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["exists"])
	store.AssertNotCalled(t, "Create", mock.Anything)

	status, body = get(t, app, "/integrity/archive?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["exists"])
	store.AssertExpectations(t)

	status, body = get(t, app, "/integrity")
	assert.Equal(t, 200, status)
	assert.Equal(t, "disabled", body["history"].(map[string]any)["status"])
	assert.Contains(t, body, "pulp")

	// Backends must never see the pooled request context.
	for _, call := range store.Calls {
		assert.NotContains(t, fmt.Sprintf("%T", call.Arguments.Get(0)), "fasthttp", call.Method)
	}
}

func TestHandler_PulpUnavailable(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(pulp.Unavailable{Reason: "no base url"}, nil, nil, archivePrefix, zap.NewNop()).Load(app))

	status, _ := get(t, app, "/integrity/pulp")
	assert.Equal(t, 503, status)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(newFake(), nil, nil, archivePrefix, zap.NewNop())
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())
}
