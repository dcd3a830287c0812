package config

import (
	"fmt"
	"reflect"
	"strings"

	"squeezer/core/database"
	"squeezer/core/logger"
	"squeezer/core/pulp"
	"squeezer/core/server"
	"squeezer/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for squeezer.
type Config struct {
	// Pulp holds the connection to the Pulp API.
	Pulp pulp.Config `mapstructure:"pulp"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the result archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the invocation history database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig reads the environment, after loading path/.env when present.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// PULP_BASE_URL -> pulp.base_url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues registers every tagged leaf field of iface as a viper key with its
// `default` tag value, so AutomaticEnv can see it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Empty defaults still register the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Database.Enabled {
		switch c.Database.Driver {
		case "mysql", "sqlite":
		default:
			return fmt.Errorf("database.driver must be mysql or sqlite, got %q", c.Database.Driver)
		}
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage is enabled")
	}
	if c.Pulp.TaskPollMillis <= 0 {
		return fmt.Errorf("pulp.task_poll_millis must be positive, got %d", c.Pulp.TaskPollMillis)
	}
	return nil
}
