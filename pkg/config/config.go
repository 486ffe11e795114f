package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for puckcast.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values. Secrets (the database
// password) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Upstream NHL API configuration
	NHL NHLConfig `yaml:"nhl"`

	// Model artifact location and current-season identifier for scoring
	Model ModelConfig `yaml:"model"`

	// SeasonsPath points at the season calendar file.
	SeasonsPath string `yaml:"seasons_path" env:"SEASONS_PATH" env-default:"seasons.yaml"`

	// MigrationsPath points at the SQL migrations directory.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"puckcast"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"puckcast"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// NHLConfig holds settings for the outbound NHL web API client.
type NHLConfig struct {
	// BaseURL is the standings API root, e.g. https://api-web.nhle.com/v1
	BaseURL string `yaml:"base_url" env:"NHL_BASE_URL" env-default:"https://api-web.nhle.com/v1"`
	// StatsBaseURL is the roster/teams listing API root.
	StatsBaseURL string `yaml:"stats_base_url" env:"NHL_STATS_BASE_URL" env-default:"https://api.nhle.com/stats/rest"`
	// UserAgent identifies this client to the upstream API. Requests without
	// a recognizable User-Agent tend to draw 403/429 responses.
	UserAgent string `yaml:"user_agent" env:"NHL_USER_AGENT" env-default:"puckcast/1.0 (+https://github.com/pucklab/puckcast)"`
	// RequestDelayMs is the fixed pause before every request, even absent
	// 429s, to stay under the upstream rate limit.
	RequestDelayMs int `yaml:"request_delay_ms" env:"NHL_REQUEST_DELAY_MS" env-default:"200"`
	// MaxRetries bounds 429 retry attempts per date.
	MaxRetries int `yaml:"max_retries" env:"NHL_MAX_RETRIES" env-default:"5"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"NHL_TIMEOUT_SECONDS" env-default:"10"`
}

// ModelConfig holds the prediction model artifact settings.
type ModelConfig struct {
	// Path is the JSON model artifact location. A missing artifact is not
	// fatal: the predictor degrades to zero probabilities.
	Path string `yaml:"path" env:"MODEL_PATH" env-default:"models/playoff_model.json"`
	// CurrentSeasonID selects which season the standings endpoint scores.
	CurrentSeasonID int64 `yaml:"current_season_id" env:"CURRENT_SEASON_ID" env-default:"20252026"`
}

// RequestDelay returns the proactive inter-request delay as a duration.
func (c *NHLConfig) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

// Timeout returns the per-request HTTP timeout as a duration.
func (c *NHLConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from the given YAML file with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
