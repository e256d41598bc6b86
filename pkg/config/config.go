package config

import (
	"fmt"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all configuration for the application
type Config struct {
	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Sales
	DefaultCurrency string `conf:"default:USD,env:DEFAULT_CURRENCY"`

	// Observability
	ServiceName     string `conf:"default:salescrm,env:SERVICE_NAME"`
	ServiceVersion  string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint    string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN       string `conf:"env:SENTRY_DSN,noprint"`
	MetricsTextfile string `conf:"env:METRICS_TEXTFILE"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ValidateForProduction enforces requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if _, err := currency.ParseISO(cfg.DefaultCurrency); err != nil {
		errs = append(errs, fmt.Sprintf("DEFAULT_CURRENCY %q is not an ISO 4217 code", cfg.DefaultCurrency))
	}

	if cfg.SentryDSN == "" {
		errs = append(errs, "SENTRY_DSN must be set in production")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
