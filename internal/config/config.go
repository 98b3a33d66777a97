// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all service configuration.
type Config struct {
	Port              string   `env:"PORT" envDefault:"8080"`
	GinMode           string   `env:"GIN_MODE" envDefault:"release"`
	LogLevel          string   `env:"LOG_LEVEL" envDefault:"info"`
	KnowledgeBasePath string   `env:"KNOWLEDGE_BASE_PATH"`
	MaxBodyBytes      int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	CORSAllowOrigins  []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	EnableDB    bool   `env:"ENABLE_DB" envDefault:"false"`
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL string `env:"DATABASE_URL"`

	Telemetry TelemetryConfig `envPrefix:"OTEL_"`
}

// TelemetryConfig controls OpenTelemetry tracing. Tracing stays off unless
// both Enabled and Endpoint are set.
type TelemetryConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	Endpoint    string `env:"ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"protocolrx"`
}

// Load reads an optional .env file, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown GIN_MODE %q", c.GinMode)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be > 0")
	}
	if !c.EnableDB {
		return nil
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// Exporting reports whether an exporter should be configured.
func (t TelemetryConfig) Exporting() bool {
	return t.Enabled && t.Endpoint != ""
}
