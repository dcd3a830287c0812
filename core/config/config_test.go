package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/pulp/", cfg.Pulp.APIRoot)
	assert.True(t, cfg.Pulp.VerifySSL)
	assert.Equal(t, 30, cfg.Pulp.TimeoutSeconds)
	assert.Equal(t, 500, cfg.Pulp.TaskPollMillis)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "squeezer", cfg.Storage.Bucket)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PULP_BASE_URL", "https://pulp.example.com")
	t.Setenv("PULP_TASK_TIMEOUT_SECONDS", "120")
	t.Setenv("SERVER_API_KEY", "secret")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://pulp.example.com", cfg.Pulp.BaseURL)
	assert.Equal(t, 120, cfg.Pulp.TaskTimeoutSeconds)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PULP_USERNAME=admin\nLOG_FORMAT=json\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PULP_USERNAME")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.Pulp.Username)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		msg    string
	}{
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad driver", func(c *Config) { c.Database.Enabled = true; c.Database.Driver = "oracle" }, "database.driver"},
		{"disabled db ignores driver", func(c *Config) { c.Database.Driver = "oracle" }, ""},
		{"storage without bucket", func(c *Config) { c.Storage.Enabled = true; c.Storage.Bucket = "" }, "storage.bucket"},
		{"zero poll", func(c *Config) { c.Pulp.TaskPollMillis = 0 }, "task_poll_millis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
