package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const clockLayout = "15:04"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Database
	DatabaseURL    string
	DatabaseDriver string
	SQLitePath     string

	// Clinic
	OperatingStart  string
	OperatingEnd    string
	DefaultDuration time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL := getEnv("DATABASE_URL", "")
	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DatabaseURL:    databaseURL,
		DatabaseDriver: getEnv("DATABASE_DRIVER", defaultDriver(databaseURL)),
		SQLitePath:     getEnv("SQLITE_PATH", ""),

		OperatingStart:  getEnv("CLINIC_OPERATING_START", "08:00"),
		OperatingEnd:    getEnv("CLINIC_OPERATING_END", "22:00"),
		DefaultDuration: getDurationEnv("CLINIC_DEFAULT_DURATION", time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	start, err := time.Parse(clockLayout, c.OperatingStart)
	if err != nil {
		return fmt.Errorf("%w: CLINIC_OPERATING_START %q is not HH:MM", ErrInvalidConfig, c.OperatingStart)
	}
	end, err := time.Parse(clockLayout, c.OperatingEnd)
	if err != nil {
		return fmt.Errorf("%w: CLINIC_OPERATING_END %q is not HH:MM", ErrInvalidConfig, c.OperatingEnd)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: operating window %s-%s is empty", ErrInvalidConfig, c.OperatingStart, c.OperatingEnd)
	}
	if c.DefaultDuration < time.Minute || c.DefaultDuration%time.Minute != 0 {
		return fmt.Errorf("%w: CLINIC_DEFAULT_DURATION %s must be a positive whole number of minutes", ErrInvalidConfig, c.DefaultDuration)
	}
	switch c.DatabaseDriver {
	case "sqlite", "postgres", "auto":
	default:
		return fmt.Errorf("%w: unknown DATABASE_DRIVER %q", ErrInvalidConfig, c.DatabaseDriver)
	}
	if c.IsPostgres() && c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required for postgres", ErrInvalidConfig)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// IsSQLite returns true if the local SQLite file is used.
func (c *Config) IsSQLite() bool {
	return c.DatabaseDriver == "sqlite"
}

// IsPostgres returns true if PostgreSQL is used.
func (c *Config) IsPostgres() bool {
	return c.DatabaseDriver == "postgres"
}

func defaultDriver(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getDurationEnv accepts Go durations ("90m") or a bare number of minutes.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if minutes := getIntEnv(key, 0); minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}
