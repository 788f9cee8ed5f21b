package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL sets the summarizer server address (scheme://host:port).
// If not set, defaults to the BRIEFLY_SERVER_ADDR environment variable.
func WithBaseURL(addr string) Option {
	return func(c *Client) {
		c.baseURL = addr
	}
}

// WithBasePath sets the API path prefix. Default: "/api/v1".
func WithBasePath(path string) Option {
	return func(c *Client) {
		c.basePath = path
	}
}

// WithTimeout sets the HTTP request timeout.
// If not set, defaults to 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom http.Client for making requests.
// Useful for testing, proxying, or custom transport configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets the source the client reads the bearer token from on
// authenticated calls. The client only ever reads from it.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetricsRegistry registers the client's request counters with the given
// registry instead of the default one.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}
