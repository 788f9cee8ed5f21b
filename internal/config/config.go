// Package config provides configuration types and loading for the briefly CLI.
//
// Configuration is file-based (briefly.yaml) with environment variable
// overrides under the BRIEFLY_ prefix. Everything has a working default: the
// CLI runs without any config file against a local backend.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the briefly CLI.
type Config struct {
	// Server configures the summarizer backend endpoint.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Auth configures session policy.
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Cache configures the client-side text summary cache.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// Storage configures where local state lives.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// LogLevel sets the slog level: debug, info, warn, or error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Trace enables stdout span export for outbound requests.
	Trace bool `yaml:"trace" mapstructure:"trace"`
}

// ServerConfig configures the backend endpoint.
type ServerConfig struct {
	// Addr is the backend base address (scheme://host:port).
	Addr string `yaml:"addr" mapstructure:"addr" validate:"required,http_url"`

	// BasePath is the API path prefix. Default: "/api/v1".
	BasePath string `yaml:"base_path" mapstructure:"base_path"`

	// Timeout is the HTTP request timeout (e.g. "30s").
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty,duration"`
}

// AuthConfig configures session policy.
type AuthConfig struct {
	// ClearOnReject drops the stored session when the server answers a
	// protected call with 401/403. Off by default: the user is prompted
	// to re-authenticate but the stored credential is kept.
	ClearOnReject bool `yaml:"clear_on_reject" mapstructure:"clear_on_reject"`
}

// CacheConfig configures the text summary cache.
type CacheConfig struct {
	// TTL is the cache lifetime (e.g. "5m"). "0" disables caching.
	TTL string `yaml:"ttl" mapstructure:"ttl" validate:"omitempty,duration"`
}

// StorageConfig configures local state paths.
type StorageConfig struct {
	// CredentialsFile is where the login credential is persisted.
	// Default: ~/.briefly/credentials.json.
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`

	// HistoryFile is the local summary history database.
	// Default: ~/.briefly/history.db.
	HistoryFile string `yaml:"history_file" mapstructure:"history_file"`
}

// SetDefaults applies default values for unset optional fields.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "http://localhost:8080"
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/api/v1"
	}
	if c.Server.Timeout == "" {
		c.Server.Timeout = "30s"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "5m"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	home, _ := os.UserHomeDir()
	if c.Storage.CredentialsFile == "" {
		c.Storage.CredentialsFile = filepath.Join(home, ".briefly", "credentials.json")
	}
	if c.Storage.HistoryFile == "" {
		c.Storage.HistoryFile = filepath.Join(home, ".briefly", "history.db")
	}
}

// RequestTimeout returns the parsed HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// CacheTTL returns the parsed summary cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}

// WriteDefault writes a fully-populated default config file at path.
// Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.ErrExist
	}
	var cfg Config
	cfg.SetDefaults()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
