package pulp

// Config holds configuration for the Pulp server connection.
type Config struct {
	// BaseURL is the scheme and host of the server, e.g. https://pulp.example.com.
	BaseURL string `mapstructure:"base_url" default:""`
	// APIRoot is the API prefix configured on the server.
	APIRoot string `mapstructure:"api_root" default:"/pulp/"`
	// Username is the basic auth user.
	Username string `mapstructure:"username" default:""`
	// Password is the basic auth password.
	Password string `mapstructure:"password" default:""`
	// VerifySSL enables TLS certificate verification.
	VerifySSL bool `mapstructure:"verify_ssl" default:"true"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// TaskTimeoutSeconds bounds waiting for a task; 0 waits forever.
	TaskTimeoutSeconds int `mapstructure:"task_timeout_seconds" default:"0"`
	// TaskPollMillis is the initial task polling interval.
	TaskPollMillis int `mapstructure:"task_poll_millis" default:"500"`
}
