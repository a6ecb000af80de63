package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Engine    EngineConfig    `yaml:"engine"`
	Cache     CacheConfig     `yaml:"cache"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// EngineConfig tunes workout generation.
type EngineConfig struct {
	FeedbackWindow     int `yaml:"feedback_window"`
	PathFeedbackLimit  int `yaml:"path_feedback_limit"`
	DefaultDurationMin int `yaml:"default_duration_min"`
}

// CacheConfig controls the in-process exercise catalog cache.
// A TTL of zero disables caching.
type CacheConfig struct {
	CatalogTTLSec int `yaml:"catalog_ttl_sec"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix MYWORKOUT_ and underscore-separated paths:
//
//	MYWORKOUT_SERVER_HOST, MYWORKOUT_SERVER_PORT,
//	MYWORKOUT_DB_HOST, MYWORKOUT_DB_PORT, MYWORKOUT_DB_NAME,
//	MYWORKOUT_DB_USER, MYWORKOUT_DB_PASSWORD, MYWORKOUT_DB_SSLMODE,
//	MYWORKOUT_AUTH_API_KEY, MYWORKOUT_ENGINE_FEEDBACK_WINDOW,
//	MYWORKOUT_CACHE_CATALOG_TTL_SEC, MYWORKOUT_TAILSCALE_ENABLED
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Default returns a config with every optional field set to its default.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Engine: EngineConfig{
			FeedbackWindow:     18,
			PathFeedbackLimit:  60,
			DefaultDurationMin: 40,
		},
		Cache:     CacheConfig{CatalogTTLSec: 60},
		Tailscale: TailscaleConfig{Hostname: "myworkout", StateDir: "tsnet-state"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MYWORKOUT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	envInt("MYWORKOUT_SERVER_PORT", &cfg.Server.Port)
	if v := os.Getenv("MYWORKOUT_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	envInt("MYWORKOUT_DB_PORT", &cfg.Database.Port)
	if v := os.Getenv("MYWORKOUT_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("MYWORKOUT_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("MYWORKOUT_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("MYWORKOUT_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("MYWORKOUT_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	envInt("MYWORKOUT_ENGINE_FEEDBACK_WINDOW", &cfg.Engine.FeedbackWindow)
	envInt("MYWORKOUT_CACHE_CATALOG_TTL_SEC", &cfg.Cache.CatalogTTLSec)
	if v := os.Getenv("MYWORKOUT_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Engine.FeedbackWindow < 1 {
		return fmt.Errorf("engine.feedback_window must be positive")
	}
	if c.Engine.PathFeedbackLimit < 1 {
		return fmt.Errorf("engine.path_feedback_limit must be positive")
	}
	if d := c.Engine.DefaultDurationMin; d < 15 || d > 120 {
		return fmt.Errorf("engine.default_duration_min must be between 15 and 120, got %d", d)
	}
	if c.Cache.CatalogTTLSec < 0 {
		return fmt.Errorf("cache.catalog_ttl_sec must not be negative")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
