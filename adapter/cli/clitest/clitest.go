// Package clitest builds CLI applications backed by an in-memory database for tests.
package clitest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/app"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/clinicdesk/pkg/config"
	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

// Config returns a configuration using a private in-memory SQLite database.
func Config() *config.Config {
	return &config.Config{
		AppEnv:          "test",
		LogLevel:        "error",
		DatabaseDriver:  "sqlite",
		SQLitePath:      sqlite.MemoryPath,
		OperatingStart:  "08:00",
		OperatingEnd:    "22:00",
		DefaultDuration: time.Hour,
	}
}

// NewApp creates a CLI application over a fresh in-memory workspace.
func NewApp(t *testing.T) *cli.App {
	t.Helper()

	container, err := app.NewContainer(context.Background(), Config(), observability.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(container.Close)

	return cli.NewApp(container)
}

// Run executes one command line and returns everything it printed.
func Run(t *testing.T, a *cli.App, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.NewRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
