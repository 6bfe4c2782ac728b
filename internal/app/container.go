// Package app wires configuration, storage and handlers into one container.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
	clinic "github.com/felixgeelhaar/clinicdesk/internal/clinic/domain"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/infrastructure/persistence"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/clinicdesk/pkg/config"
	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver
	Store    *persistence.Store

	// Workspace
	Workspace      *application.Workspace
	LoadReport     application.LoadReport
	OperatingHours scheduling.TimeInterval

	// Patient Command Handlers
	AddPatientHandler    *commands.AddPatientHandler
	EditPatientHandler   *commands.EditPatientHandler
	DeletePatientHandler *commands.DeletePatientHandler

	// Appointment Command Handlers
	ScheduleAppointmentHandler *commands.ScheduleAppointmentHandler
	CancelAppointmentHandler   *commands.CancelAppointmentHandler
	EditAppointmentHandler     *commands.EditAppointmentHandler
	MarkAppointmentDoneHandler *commands.MarkAppointmentDoneHandler

	// Workspace Command Handlers
	ClearAllHandler *commands.ClearAllHandler
	UndoHandler     *commands.UndoHandler
	RedoHandler     *commands.RedoHandler

	// Query Handlers
	ListPatientsHandler     *queries.ListPatientsHandler
	ListAppointmentsHandler *queries.ListAppointmentsHandler
	FindFreeSlotsHandler    *queries.FindFreeSlotsHandler

	// Health
	Health *observability.HealthRegistry
}

// NewContainer opens the configured database, loads the workspace and
// creates every handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	operating, err := operatingHours(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := database.Open(ctx, database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	startup := observability.LogOperation(logger, "startup")
	startup.Debug("database connected", "driver", conn.Driver())

	store := persistence.NewStore(conn)
	if err := store.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	workspace, report, err := application.OpenWorkspace(ctx, store, startup)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	c := &Container{
		Config:         cfg,
		Logger:         logger,
		DBConn:         conn,
		DBDriver:       conn.Driver(),
		Store:          store,
		Workspace:      workspace,
		LoadReport:     report,
		OperatingHours: operating,

		AddPatientHandler:    commands.NewAddPatientHandler(workspace, store),
		EditPatientHandler:   commands.NewEditPatientHandler(workspace, store),
		DeletePatientHandler: commands.NewDeletePatientHandler(workspace, store),

		ScheduleAppointmentHandler: commands.NewScheduleAppointmentHandler(workspace, store, cfg.DefaultDuration),
		CancelAppointmentHandler:   commands.NewCancelAppointmentHandler(workspace, store),
		EditAppointmentHandler:     commands.NewEditAppointmentHandler(workspace, store),
		MarkAppointmentDoneHandler: commands.NewMarkAppointmentDoneHandler(workspace, store),

		ClearAllHandler: commands.NewClearAllHandler(workspace, store),
		UndoHandler:     commands.NewUndoHandler(workspace, store),
		RedoHandler:     commands.NewRedoHandler(workspace, store),

		ListPatientsHandler:     queries.NewListPatientsHandler(workspace),
		ListAppointmentsHandler: queries.NewListAppointmentsHandler(workspace),
		FindFreeSlotsHandler:    queries.NewFindFreeSlotsHandler(workspace, operating),
	}
	c.Health = c.newHealthRegistry()

	return c, nil
}

// Close releases the database connection.
func (c *Container) Close() {
	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}

func (c *Container) newHealthRegistry() *observability.HealthRegistry {
	registry := observability.NewHealthRegistry()
	registry.Register("database", observability.DatabaseHealthChecker(c.DBConn.Ping))
	registry.Register("consistency", c.checkConsistency)
	registry.Register("storage", c.checkStorage)
	return registry
}

// checkStorage compares the stored row counts with the workspace, which
// differ when the last save failed.
func (c *Container) checkStorage(ctx context.Context) observability.HealthCheckResult {
	storedPatients, storedAppointments, err := c.Store.Counts(ctx)
	if err != nil {
		return observability.HealthCheckResult{
			Status:  observability.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	}

	livePatients, liveAppointments := c.Workspace.Patients().Len(), c.Workspace.Appointments().Len()
	if storedPatients != livePatients || storedAppointments != liveAppointments {
		return observability.HealthCheckResult{
			Status: observability.HealthStatusDegraded,
			Message: fmt.Sprintf("unsaved changes: stored %d patients and %d appointments, workspace has %d and %d",
				storedPatients, storedAppointments, livePatients, liveAppointments),
		}
	}
	return observability.HealthCheckResult{
		Status:  observability.HealthStatusHealthy,
		Message: "stored data matches the workspace",
	}
}

// checkConsistency reports records dropped at load time and verifies the
// live collections still agree.
func (c *Container) checkConsistency(context.Context) observability.HealthCheckResult {
	valid := clinic.NewConsistencyChecker().IsValid(
		c.Workspace.Patients().Patients(),
		c.Workspace.Appointments().Appointments(),
	)
	if !valid {
		return observability.HealthCheckResult{
			Status:  observability.HealthStatusUnhealthy,
			Message: "appointments refer to unknown patients",
		}
	}

	report := c.LoadReport
	if report.Dropped() {
		return observability.HealthCheckResult{
			Status: observability.HealthStatusDegraded,
			Message: fmt.Sprintf("skipped at load: %d duplicate patients, %d orphaned and %d conflicting appointments",
				len(report.DuplicatePatients), len(report.OrphanedAppointments), len(report.ConflictingBookings)),
		}
	}
	return observability.HealthCheckResult{
		Status:  observability.HealthStatusHealthy,
		Message: fmt.Sprintf("%d patients, %d appointments", c.Workspace.Patients().Len(), c.Workspace.Appointments().Len()),
	}
}

func operatingHours(cfg *config.Config) (scheduling.TimeInterval, error) {
	start, err := scheduling.ParseTime(cfg.OperatingStart)
	if err != nil {
		return scheduling.TimeInterval{}, fmt.Errorf("invalid operating start %q: %w", cfg.OperatingStart, err)
	}
	end, err := scheduling.ParseTime(cfg.OperatingEnd)
	if err != nil {
		return scheduling.TimeInterval{}, fmt.Errorf("invalid operating end %q: %w", cfg.OperatingEnd, err)
	}
	return scheduling.NewTimeInterval(start, end)
}
