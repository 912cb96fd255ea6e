package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Local   LocalConfig   `yaml:"local"`
	Sync    SyncConfig    `yaml:"sync"`
	Events  EventsConfig  `yaml:"events"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port              int `yaml:"port"`
	MetricsPort       int `yaml:"metrics_port"`
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type LocalConfig struct {
	DatabasePath string `yaml:"database_path"`
}

type SyncConfig struct {
	DatabaseURL string `yaml:"database_url"`
	DebounceMs  int    `yaml:"debounce_ms"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type AuthConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) SyncDebounce() time.Duration {
	return time.Duration(c.Sync.DebounceMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              8700,
			MetricsPort:       8701,
			RequestsPerMinute: 120,
		},
		Local: LocalConfig{
			DatabasePath: "haven.db",
		},
		Sync: SyncConfig{
			DebounceMs: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HAVEN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("HAVEN_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("HAVEN_DATABASE_PATH"); v != "" {
		cfg.Local.DatabasePath = v
	}
	if v := os.Getenv("HAVEN_SYNC_DATABASE_URL"); v != "" {
		cfg.Sync.DatabaseURL = v
	}
	if v := os.Getenv("HAVEN_SYNC_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sync.DebounceMs = n
		}
	}
	if v := os.Getenv("HAVEN_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("HAVEN_AUTH_URL"); v != "" {
		cfg.Auth.URL = v
	}
	if v := os.Getenv("HAVEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
