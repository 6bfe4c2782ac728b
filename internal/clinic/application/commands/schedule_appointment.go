package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/google/uuid"
)

// ScheduleAppointmentCommand contains the data needed to book an appointment.
type ScheduleAppointmentCommand struct {
	Date      time.Time
	Start     string // HH:MM
	Duration  time.Duration
	PatientID uuid.UUID // uuid.Nil books a slot with no patient
}

func (ScheduleAppointmentCommand) CommandName() string { return "schedule_appointment" }

// ScheduleAppointmentResult contains the booked appointment.
type ScheduleAppointmentResult struct {
	Appointment scheduling.Appointment
}

// ScheduleAppointmentHandler handles the ScheduleAppointmentCommand.
type ScheduleAppointmentHandler struct {
	committer
	defaultDuration time.Duration
}

var _ sharedApplication.CommandHandler[ScheduleAppointmentCommand, *ScheduleAppointmentResult] = (*ScheduleAppointmentHandler)(nil)

// NewScheduleAppointmentHandler creates a new ScheduleAppointmentHandler.
// defaultDuration applies when a command leaves Duration unset.
func NewScheduleAppointmentHandler(workspace *application.Workspace, store application.Store, defaultDuration time.Duration) *ScheduleAppointmentHandler {
	if defaultDuration <= 0 {
		defaultDuration = scheduling.DefaultAppointmentDuration
	}
	return &ScheduleAppointmentHandler{
		committer:       committer{workspace: workspace, store: store},
		defaultDuration: defaultDuration,
	}
}

// Handle executes the ScheduleAppointmentCommand.
func (h *ScheduleAppointmentHandler) Handle(ctx context.Context, cmd ScheduleAppointmentCommand) (*ScheduleAppointmentResult, error) {
	date, err := scheduling.NewDate(cmd.Date)
	if err != nil {
		return nil, err
	}
	start, err := scheduling.ParseTime(cmd.Start)
	if err != nil {
		return nil, err
	}
	if cmd.PatientID != uuid.Nil {
		if _, err := h.workspace.Patients().FindByID(cmd.PatientID); err != nil {
			return nil, err
		}
	}

	duration := cmd.Duration
	if duration == 0 {
		duration = h.defaultDuration
	}

	appointment, err := scheduling.NewAppointment(date, start, duration, cmd.PatientID)
	if err != nil {
		return nil, err
	}

	if err := h.workspace.Appointments().Add(appointment); err != nil {
		return nil, h.fail(fmt.Errorf("failed to schedule appointment: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &ScheduleAppointmentResult{Appointment: appointment}, nil
}
