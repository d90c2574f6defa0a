package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/2beens/daybyday/internal/gymstats/stats"
	"github.com/2beens/daybyday/internal/gymstats/workouts"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`

	// upstream
	HevyBaseURL        string `toml:"hevy_base_url"`
	HevyTimeoutSeconds int    `toml:"hevy_timeout_seconds"`

	// snapshot
	RefreshOnStartup           bool   `toml:"refresh_on_startup"`
	RefreshSchedule            string `toml:"refresh_schedule"`
	RefreshRateLimitAllowedMin int    `toml:"refresh_rate_limit_allowed_per_min"`
	SnapshotPersistTTLMinutes  int    `toml:"snapshot_persist_ttl_minutes"`

	// analytics
	Categories       []stats.Category    `toml:"categories"`
	AddedLoadMarkers []string            `toml:"added_load_markers"`
	FieldAliases     map[string][]string `toml:"field_aliases"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, errors.New("development config missing")
		}
		t.Development.Environment = "development"
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, errors.New("production config missing")
		}
		t.Production.Environment = "production"
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config of env with
// defaults applied.
func Load(env, path string) (*Config, error) {
	t := &Toml{}
	if _, err := toml.DecodeFile(path, t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", cfg.Environment, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.HevyTimeoutSeconds <= 0 {
		c.HevyTimeoutSeconds = 15
	}
	if c.RefreshRateLimitAllowedMin <= 0 {
		c.RefreshRateLimitAllowedMin = 2
	}
	if len(c.Categories) == 0 {
		c.Categories = stats.DefaultCategories()
	}
}

// Validate checks the parts of the config that would otherwise only fail on
// first use.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if _, err := stats.NewCategories(c.Categories); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	if _, err := c.Aliases(); err != nil {
		return err
	}
	return nil
}

func (c *Config) HevyTimeout() time.Duration {
	return time.Duration(c.HevyTimeoutSeconds) * time.Second
}

func (c *Config) SnapshotPersistTTL() time.Duration {
	return time.Duration(c.SnapshotPersistTTLMinutes) * time.Minute
}

// Aliases converts the configured field alias overrides, rejecting unknown
// field names.
func (c *Config) Aliases() (workouts.FieldAliases, error) {
	if len(c.FieldAliases) == 0 {
		return nil, nil
	}

	known := workouts.DefaultFieldAliases()
	out := make(workouts.FieldAliases, len(c.FieldAliases))
	for name, keys := range c.FieldAliases {
		field := workouts.Field(name)
		if _, ok := known[field]; !ok {
			return nil, fmt.Errorf("field_aliases: unknown field %q", name)
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("field_aliases: no keys for %q", name)
		}
		out[field] = keys
	}
	return out, nil
}
