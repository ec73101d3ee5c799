package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type AppConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	StoreBackend string `yaml:"store_backend"`
	RedisURL     string `yaml:"redis_url"`
	DatabaseURL  string `yaml:"database_url"`

	SessionTTLSec int `yaml:"session_ttl_sec"`

	WSReadBufferSize  int `yaml:"ws_read_buffer"`
	WSWriteBufferSize int `yaml:"ws_write_buffer"`
}

func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSec) * time.Second
}

func defaults() *AppConfig {
	return &AppConfig{
		ListenAddr:        ":3000",
		AllowedOrigins:    []string{"http://localhost:5173"},
		StoreBackend:      StoreMemory,
		SessionTTLSec:     3600,
		WSReadBufferSize:  1024,
		WSWriteBufferSize: 1024,
	}
}

// Load starts from defaults, applies the YAML file named by CONFIG_FILE if
// any, then environment variables.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		c.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				origins = append(origins, s)
			}
		}
		c.AllowedOrigins = origins
	}
	if v := strings.TrimSpace(os.Getenv("STORE_BACKEND")); v != "" {
		c.StoreBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		c.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		c.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SessionTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("WS_READ_BUFFER")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.WSReadBufferSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("WS_WRITE_BUFFER")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.WSWriteBufferSize = n
		}
	}
}

func (c *AppConfig) Validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if c.SessionTTLSec <= 0 {
		return errors.New("session TTL must be positive")
	}
	return nil
}
