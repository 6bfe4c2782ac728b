package cli

import (
	"context"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/clinicdesk/internal/app"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	Logger *slog.Logger

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

	OperatingHours scheduling.TimeInterval
	Health         *observability.HealthRegistry

	openOnce  sync.Once
	opener    Opener
	container *app.Container
	openErr   error
}

// Opener builds the container on first use.
type Opener func(ctx context.Context) (*app.Container, error)

// NewApp creates a CLI application from the container's handlers.
func NewApp(c *app.Container) *App {
	a := &App{}
	a.bind(c)
	return a
}

// NewLazyApp creates a CLI application that opens its container only when a
// command needs the workspace, so version and help work without a database.
func NewLazyApp(logger *slog.Logger, open Opener) *App {
	return &App{Logger: logger, opener: open}
}

// Open builds the container if the app was created lazily. The first
// result is remembered.
func (a *App) Open(ctx context.Context) error {
	if a.opener == nil {
		return nil
	}
	a.openOnce.Do(func() {
		c, err := a.opener(ctx)
		if err != nil {
			a.openErr = err
			return
		}
		a.container = c
		a.bind(c)
	})
	return a.openErr
}

// Close releases a container opened by Open.
func (a *App) Close() {
	if a.container != nil {
		a.container.Close()
	}
}

func (a *App) bind(c *app.Container) {
	a.Logger = c.Logger

	a.AddPatientHandler = c.AddPatientHandler
	a.EditPatientHandler = c.EditPatientHandler
	a.DeletePatientHandler = c.DeletePatientHandler

	a.ScheduleAppointmentHandler = c.ScheduleAppointmentHandler
	a.CancelAppointmentHandler = c.CancelAppointmentHandler
	a.EditAppointmentHandler = c.EditAppointmentHandler
	a.MarkAppointmentDoneHandler = c.MarkAppointmentDoneHandler

	a.ClearAllHandler = c.ClearAllHandler
	a.UndoHandler = c.UndoHandler
	a.RedoHandler = c.RedoHandler

	a.ListPatientsHandler = c.ListPatientsHandler
	a.ListAppointmentsHandler = c.ListAppointmentsHandler
	a.FindFreeSlotsHandler = c.FindFreeSlotsHandler

	a.OperatingHours = c.OperatingHours
	a.Health = c.Health
}

func (a *App) logger() *slog.Logger {
	if a == nil || a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
