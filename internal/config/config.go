package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the journal service.
// Environment variables are parsed from the JOURNAL_ prefix,
// e.g. JOURNAL_HTTP_PORT, JOURNAL_POSTGRES_DSN.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local build target)
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/journal.db"`

	// Auth Configuration
	JWTSecret     string `envconfig:"JWT_SECRET" default:"local-dev-secret"`
	TokenTTLHours int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`

	// External content upstreams. Empty values fall back to the public APIs.
	QuotesURL             string `envconfig:"QUOTES_URL" default:"https://zenquotes.io/api/quotes"`
	AdviceURL             string `envconfig:"ADVICE_URL" default:"https://api.adviceslip.com/advice"`
	RecipesURL            string `envconfig:"RECIPES_URL" default:"https://api.edamam.com/search"`
	RecipesAppID          string `envconfig:"RECIPES_APP_ID" default:""`
	RecipesAppKey         string `envconfig:"RECIPES_APP_KEY" default:""`
	ContentTimeoutSeconds int    `envconfig:"CONTENT_TIMEOUT_SECONDS" default:"5"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to
// "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("JOURNAL_POSTGRES_DSN is required for %s", c.BuildTarget)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("JOURNAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
