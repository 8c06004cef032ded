package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/restkit/logger"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server        struct {
		Port        int           `mapstructure:"port"`
		ReadTimeout time.Duration `mapstructure:"read_timeout"`
	} `mapstructure:"server"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoad_YAMLAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: restdemo
environment: staging
server:
  port: 8080
  read_timeout: 5s
logging:
  format: json
`)

	var cfg testConfig
	if err := Load("restdemo", &cfg, WithConfigFile(path), WithEnvPrefix("RKTEST")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "restdemo" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Server.Port != 8080 || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("expected logging defaults to apply, got %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: restdemo\nserver:\n  port: 8080\n")
	envPath := writeFile(t, dir, ".env", "RKTEST_LOGGING_LEVEL=warn\n")
	t.Setenv("RKTEST_SERVER_PORT", "9090")
	t.Setenv("RKTEST_SERVER_READ_TIMEOUT", "2s")
	t.Cleanup(func() { _ = os.Unsetenv("RKTEST_LOGGING_LEVEL") })

	var cfg testConfig
	err := Load("restdemo", &cfg, WithConfigFile(path), WithEnvFile(envPath), WithEnvPrefix("rktest"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("expected env read timeout 2s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level from .env, got %q", cfg.Logging.Level)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "environment: nowhere\n")

	var cfg testConfig
	err := Load("restdemo", &cfg, WithConfigFile(path), WithEnvPrefix("RKTEST"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "config") {
		t.Errorf("expected wrapped config error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg struct {
		Name string `mapstructure:"name"`
	}
	if err := Load("none", &cfg, WithConfigFile("/nonexistent/config.yml"), WithEnvPrefix("RKTEST")); err != nil {
		t.Fatalf("expected missing file to be skipped, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestFindFirst(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./config.yml": true, "./cmd/svc/config.yml": true}}
	if got := findFirst(fs, configCandidates("svc")); got != "./cmd/svc/config.yml" {
		t.Errorf("expected service config to win, got %q", got)
	}
	if got := findFirst(fs, envCandidates("svc")); got != "" {
		t.Errorf("expected no env file, got %q", got)
	}
}

func TestKeyVariants(t *testing.T) {
	got := keyVariants("SERVER_READ_TIMEOUT")
	for _, want := range []string{"server_read_timeout", "server.read.timeout", "server.read_timeout", "server_read.timeout"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected variant %q in %v", want, got)
		}
	}
	if got := keyVariants("PORT"); len(got) != 1 || got[0] != "port" {
		t.Errorf("unexpected single-part variants %v", got)
	}
}

func TestServiceConfig_Defaults(t *testing.T) {
	c := ServiceConfig{Name: "x"}
	c.ApplyDefaults()
	if c.Environment != "development" || !c.Debug || c.Logging.Level != "debug" {
		t.Errorf("unexpected defaults %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	c.Logging = logger.Config{Level: "loud", Format: "json"}
	if err := c.Validate(); err == nil {
		t.Error("expected invalid logging level to fail")
	}
}
