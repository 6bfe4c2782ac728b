package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config holds database configuration.
type Config struct {
	// Driver selects the backend. Empty or "auto" detects it from URL.
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string

	// SQLitePath is the SQLite database file, or ":memory:".
	// Defaults to ~/.clinicdesk/clinic.db.
	SQLitePath string

	// MaxConns caps the PostgreSQL pool size.
	MaxConns int
}

// Factory opens a connection for one driver.
type Factory func(ctx context.Context, cfg Config) (Connection, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Driver]Factory)
)

// Register makes a driver available to Open. Driver packages call it from init.
func Register(driver Driver, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[driver] = factory
}

// Open creates a connection for cfg using the registered driver factory.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" || driver == "auto" {
		driver = DetectDriver(cfg.URL)
	}

	factoriesMu.RLock()
	factory, ok := factories[driver]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
	return factory(ctx, cfg)
}

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".clinicdesk", "clinic.db")
}

// EnsureDirectory creates the parent directory for a file path if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o750)
}
