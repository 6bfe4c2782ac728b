package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/adapter/cli/appointment"
	"github.com/felixgeelhaar/clinicdesk/adapter/cli/patient"
	"github.com/felixgeelhaar/clinicdesk/internal/app"
	"github.com/felixgeelhaar/clinicdesk/pkg/config"
	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		observability.LoggerFromEnv().Error("failed to load config", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	format := observability.LogFormat(cfg.LogFormat)
	if cfg.IsProduction() {
		format = observability.LogFormatJSON
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:          observability.LogLevel(cfg.LogLevel),
		Format:         format,
		Output:         os.Stderr,
		ServiceName:    "clinicdesk",
		ServiceVersion: cli.Version,
	})

	// Handle shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The database is opened on first use so version and help work without it
	application := cli.NewLazyApp(logger, func(ctx context.Context) (*app.Container, error) {
		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to initialize container", "error", err)
			return nil, err
		}
		return container, nil
	})
	defer application.Close()

	// Register commands
	cli.AddCommand(patient.NewCmd)
	cli.AddCommand(appointment.NewCmd)

	if err := cli.Execute(ctx, application); err != nil {
		return 1
	}
	return 0
}
