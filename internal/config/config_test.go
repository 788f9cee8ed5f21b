package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	if cfg.Server.Addr != "http://localhost:8080" {
		t.Errorf("default addr: %q", cfg.Server.Addr)
	}
	if cfg.Server.BasePath != "/api/v1" {
		t.Errorf("default base path: %q", cfg.Server.BasePath)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("default timeout: %v", cfg.RequestTimeout())
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("default cache ttl: %v", cfg.CacheTTL())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level: %q", cfg.LogLevel)
	}
	if cfg.Auth.ClearOnReject {
		t.Error("clear_on_reject must default to false")
	}
	if !strings.HasSuffix(cfg.Storage.CredentialsFile, filepath.Join(".briefly", "credentials.json")) {
		t.Errorf("default credentials file: %q", cfg.Storage.CredentialsFile)
	}
}

func TestSetDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Addr: "https://api.example.com", Timeout: "5s"},
		LogLevel: "debug",
	}
	cfg.SetDefaults()

	if cfg.Server.Addr != "https://api.example.com" {
		t.Errorf("addr overwritten: %q", cfg.Server.Addr)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("timeout overwritten: %v", cfg.RequestTimeout())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level overwritten: %q", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "required",
		},
		{
			name:    "addr not a url",
			mutate:  func(c *Config) { c.Server.Addr = "localhost:8080" },
			wantErr: "http(s) URL",
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.Server.Timeout = "soon" },
			wantErr: "duration",
		},
		{
			name:    "bad cache ttl",
			mutate:  func(c *Config) { c.Cache.TTL = "forever" },
			wantErr: "duration",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.SetDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "briefly.yaml")
	content := `
server:
  addr: https://summarizer.example.com
  timeout: 10s
auth:
  clear_on_reject: true
log_level: warn
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	InitViper(path)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Addr != "https://summarizer.example.com" {
		t.Errorf("addr: %q", cfg.Server.Addr)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("timeout: %v", cfg.RequestTimeout())
	}
	if !cfg.Auth.ClearOnReject {
		t.Error("clear_on_reject not loaded")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level: %q", cfg.LogLevel)
	}
	// Defaults still fill the unset fields.
	if cfg.Server.BasePath != "/api/v1" {
		t.Errorf("base path default: %q", cfg.Server.BasePath)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BRIEFLY_SERVER_ADDR", "http://10.0.0.5:9000")
	t.Setenv("BRIEFLY_LOG_LEVEL", "error")

	InitViper("")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Addr != "http://10.0.0.5:9000" {
		t.Errorf("env addr not applied: %q", cfg.Server.Addr)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("env log level not applied: %q", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidFileRejected(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "briefly.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: not-a-url\n"), 0600); err != nil {
		t.Fatal(err)
	}

	InitViper(path)
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation failure for bad addr")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "briefly.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "addr: http://localhost:8080") {
		t.Errorf("default file missing addr: %s", data)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected error when file already exists")
	}
}
