package pulp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 32 << 20

// Client defines the interface for Pulp API calls.
type Client interface {
	// Call invokes an operation. params fill the path template and the query
	// string; body, if not nil, is sent as JSON. The decoded JSON response is
	// returned, or nil for empty responses.
	Call(ctx context.Context, operationID string, params map[string]any, body any) (any, error)
	// Operation describes an operation id.
	Operation(operationID string) (Operation, bool)
}

// HTTPClient calls a live server over HTTP with basic auth.
type HTTPClient struct {
	cfg     Config
	base    string
	http    *http.Client
	logger  *zap.Logger
	version string
}

// NewClient creates an HTTP client based on the configuration.
func NewClient(cfg Config, logger *zap.Logger) (*HTTPClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid pulp base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid pulp base url %q: scheme and host are required", cfg.BaseURL)
	}
	if cfg.APIRoot == "" {
		cfg.APIRoot = "/pulp/"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: !cfg.VerifySSL}, //nolint:gosec // opt-out is explicit config
	}

	return &HTTPClient{
		cfg:     cfg,
		base:    strings.TrimRight(u.Scheme+"://"+u.Host, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeoutDuration},
		logger:  logger,
		version: "squeezer",
	}, nil
}

// Connect returns an HTTP client, or an Unavailable client when no base
// URL is configured. Module invocations then fail with ErrUnavailable.
func Connect(cfg Config, logger *zap.Logger) (Client, error) {
	if cfg.BaseURL == "" {
		return Unavailable{Reason: "pulp.base_url is not configured"}, nil
	}
	return NewClient(cfg, logger)
}

// Operation describes an operation id.
func (c *HTTPClient) Operation(operationID string) (Operation, bool) {
	return LookupOperation(operationID)
}

// Call invokes an operation on the server.
func (c *HTTPClient) Call(ctx context.Context, operationID string, params map[string]any, body any) (any, error) {
	op, ok := LookupOperation(operationID)
	if !ok {
		return nil, &Error{Op: operationID, Kind: ErrUnknownOperation}
	}
	if err := CheckDryRun(ctx, op); err != nil {
		return nil, err
	}

	path, query, err := op.Expand(c.cfg.APIRoot, params)
	if err != nil {
		return nil, err
	}
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", operationID, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, target, reader)
	if err != nil {
		return nil, &Error{Op: operationID, Kind: ErrTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: operationID, Kind: ErrTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Op: operationID, Status: resp.StatusCode, Kind: ErrTransport, Err: err}
	}

	c.logger.Debug("Pulp call",
		zap.String("operation", operationID),
		zap.String("method", op.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return nil, StatusError(operationID, resp.StatusCode, errorDetail(data))
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &Error{Op: operationID, Status: resp.StatusCode, Kind: ErrTransport, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

// errorDetail extracts a readable message from an error body.
func errorDetail(data []byte) string {
	if !gjson.ValidBytes(data) {
		return truncate(strings.TrimSpace(string(data)), 200)
	}
	if detail := gjson.GetBytes(data, "detail"); detail.Exists() {
		return detail.String()
	}
	if errs := gjson.GetBytes(data, "errors.0.detail"); errs.Exists() {
		return errs.String()
	}
	return truncate(gjson.ParseBytes(data).Raw, 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
