package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var envKeys = []string{
	"CONFIG_FILE", "LISTEN_ADDR", "ALLOWED_ORIGINS", "STORE_BACKEND", "REDIS_URL",
	"DATABASE_URL", "SESSION_TTL", "WS_READ_BUFFER", "WS_WRITE_BUFFER",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(defaults(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.SessionTTL() != time.Hour {
		t.Errorf("SessionTTL() = %v; want 1h", cfg.SessionTTL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_TTL", "60")
	t.Setenv("WS_READ_BUFFER", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := defaults()
	want.ListenAddr = ":8080"
	want.AllowedOrigins = []string{"http://a.test", "http://b.test"}
	want.StoreBackend = StoreRedis
	want.RedisURL = "redis://localhost:6379/0"
	want.SessionTTLSec = 60
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "clickchess.yaml")
	body := "listen_addr: \":9000\"\nstore_backend: postgres\ndatabase_url: postgres://file\nsession_ttl_sec: 120\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q; want :9000", cfg.ListenAddr)
	}
	if cfg.StoreBackend != StorePostgres {
		t.Errorf("StoreBackend = %q; want postgres", cfg.StoreBackend)
	}
	if cfg.DatabaseURL != "postgres://env" {
		t.Errorf("DatabaseURL = %q; env should win over file", cfg.DatabaseURL)
	}
	if cfg.SessionTTLSec != 120 {
		t.Errorf("SessionTTLSec = %d; want 120", cfg.SessionTTLSec)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis without url", map[string]string{"STORE_BACKEND": "redis"}},
		{"postgres without url", map[string]string{"STORE_BACKEND": "postgres"}},
		{"unknown backend", map[string]string{"STORE_BACKEND": "etcd"}},
		{"missing config file", map[string]string{"CONFIG_FILE": "/nonexistent/clickchess.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load succeeded; want error")
			}
		})
	}
}
