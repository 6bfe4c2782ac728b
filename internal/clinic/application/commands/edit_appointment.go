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

// EditAppointmentCommand moves or reassigns the appointment starting at
// Start on Date. Zero-valued New* fields keep the current value.
type EditAppointmentCommand struct {
	Date  time.Time
	Start string

	NewDate       time.Time
	NewStart      string
	NewDuration   time.Duration
	NewPatientID  uuid.UUID
	DetachPatient bool
}

func (EditAppointmentCommand) CommandName() string { return "edit_appointment" }

// EditAppointmentResult contains the appointment before and after the edit.
type EditAppointmentResult struct {
	Previous    scheduling.Appointment
	Appointment scheduling.Appointment
}

// EditAppointmentHandler handles the EditAppointmentCommand.
type EditAppointmentHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[EditAppointmentCommand, *EditAppointmentResult] = (*EditAppointmentHandler)(nil)

// NewEditAppointmentHandler creates a new EditAppointmentHandler.
func NewEditAppointmentHandler(workspace *application.Workspace, store application.Store) *EditAppointmentHandler {
	return &EditAppointmentHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the EditAppointmentCommand. The edited appointment is
// checked against every other appointment before the book changes, so a
// conflicting edit leaves the original in place.
func (h *EditAppointmentHandler) Handle(ctx context.Context, cmd EditAppointmentCommand) (*EditAppointmentResult, error) {
	book := h.workspace.Appointments()
	target, err := locate(book, cmd.Date, cmd.Start)
	if err != nil {
		return nil, err
	}

	edited, err := h.apply(target, cmd)
	if err != nil {
		return nil, err
	}

	if err := book.Replace(target, edited); err != nil {
		return nil, h.fail(fmt.Errorf("failed to edit appointment: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &EditAppointmentResult{Previous: target, Appointment: edited}, nil
}

func (h *EditAppointmentHandler) apply(target scheduling.Appointment, cmd EditAppointmentCommand) (scheduling.Appointment, error) {
	date := target.Date()
	if !cmd.NewDate.IsZero() {
		d, err := scheduling.NewDate(cmd.NewDate)
		if err != nil {
			return scheduling.Appointment{}, err
		}
		date = d
	}

	start := target.StartTime()
	if cmd.NewStart != "" {
		s, err := scheduling.ParseTime(cmd.NewStart)
		if err != nil {
			return scheduling.Appointment{}, err
		}
		start = s
	}

	duration := target.Duration()
	if cmd.NewDuration != 0 {
		duration = cmd.NewDuration
	}

	patientID := target.PatientID()
	switch {
	case cmd.DetachPatient:
		patientID = uuid.Nil
	case cmd.NewPatientID != uuid.Nil:
		if _, err := h.workspace.Patients().FindByID(cmd.NewPatientID); err != nil {
			return scheduling.Appointment{}, err
		}
		patientID = cmd.NewPatientID
	}

	edited, err := scheduling.NewAppointment(date, start, duration, patientID)
	if err != nil {
		return scheduling.Appointment{}, err
	}
	if target.IsDone() {
		edited = edited.MarkAsDone()
	}
	return edited, nil
}
