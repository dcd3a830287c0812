package pulp_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"squeezer/core/pulp"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *pulp.HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := pulp.NewClient(pulp.Config{
		BaseURL:  srv.URL,
		APIRoot:  "/pulp/",
		Username: "admin",
		Password: "secret",
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestHTTPClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pulp/api/v3/repositories/deb/apt/", r.URL.Path)
		assert.Equal(t, "repo1", r.URL.Query().Get("name"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)

		_, _ = io.WriteString(w, `{"count": 1, "next": null, "results": [{"pulp_href": "/pulp/api/v3/repositories/deb/apt/1/", "name": "repo1"}]}`)
	})

	out, err := client.Call(context.Background(), "repositories_deb_apt_list", map[string]any{"name": "repo1", "limit": 10}, nil)
	require.NoError(t, err)

	page := out.(map[string]any)
	assert.Equal(t, float64(1), page["count"])
	assert.Len(t, page["results"], 1)
}

func TestHTTPClient_PatchByHref(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/pulp/api/v3/repositories/deb/apt/1/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"description": "new"}, body)

		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"task": "/pulp/api/v3/tasks/9/"}`)
	})

	out, err := client.Call(context.Background(), "repositories_deb_apt_partial_update",
		map[string]any{"deb_deb_repository_href": "/pulp/api/v3/repositories/deb/apt/1/"},
		map[string]any{"description": "new"},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"task": "/pulp/api/v3/tasks/9/"}, out)
}

func TestHTTPClient_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	out, err := client.Call(context.Background(), "publications_python_pypi_delete",
		map[string]any{"python_python_publication_href": "/pulp/api/v3/publications/python/pypi/1/"}, nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   error
		wantDetail string
	}{
		{"not found", http.StatusNotFound, `{"detail": "Not found."}`, pulp.ErrNotFound, "Not found."},
		{"unauthorized", http.StatusUnauthorized, `{"detail": "Invalid username/password."}`, pulp.ErrUnauthorized, "Invalid username/password."},
		{"forbidden", http.StatusForbidden, `{"detail": "Nope"}`, pulp.ErrUnauthorized, "Nope"},
		{"bad request", http.StatusBadRequest, `{"name": ["This field must be unique."]}`, pulp.ErrTransport, `{"name": ["This field must be unique."]}`},
		{"server error html", http.StatusInternalServerError, `<html>oops</html>`, pulp.ErrTransport, "<html>oops</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.Call(context.Background(), "tasks_read", map[string]any{"task_href": "/pulp/api/v3/tasks/1/"}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)

			var perr *pulp.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.status, perr.Status)
			assert.Equal(t, tt.wantDetail, perr.Detail)
		})
	}
}

func TestHTTPClient_DryRunRefusesMutations(t *testing.T) {
	var hits int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = io.WriteString(w, `{"count": 0, "results": []}`)
	})
	ctx := pulp.WithDryRun(context.Background(), true)

	_, err := client.Call(ctx, "repositories_deb_apt_create", nil, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, pulp.ErrDryRun)
	assert.Equal(t, 0, hits)

	_, err = client.Call(ctx, "repositories_deb_apt_list", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestHTTPClient_Misuse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Call(context.Background(), "does_not_exist", nil, nil)
	assert.ErrorIs(t, err, pulp.ErrUnknownOperation)

	_, err = client.Call(context.Background(), "tasks_read", nil, nil)
	assert.ErrorContains(t, err, `missing path parameter "task_href"`)
}

func TestHTTPClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := pulp.NewClient(pulp.Config{BaseURL: base, TimeoutSeconds: 1}, nil)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "status_read", nil, nil)
	assert.ErrorIs(t, err, pulp.ErrTransport)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := pulp.NewClient(pulp.Config{BaseURL: "localhost"}, nil)
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	client, err := pulp.Connect(pulp.Config{}, nil)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "status_read", nil, nil)
	assert.ErrorIs(t, err, pulp.ErrUnavailable)

	_, ok := client.Operation("status_read")
	assert.True(t, ok)

	client, err = pulp.Connect(pulp.Config{BaseURL: "https://pulp.example.com"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &pulp.HTTPClient{}, client)
}
