package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
)

// MarkAppointmentDoneCommand records that an appointment took place.
type MarkAppointmentDoneCommand struct {
	Date  time.Time
	Start string
}

func (MarkAppointmentDoneCommand) CommandName() string { return "mark_appointment_done" }

// MarkAppointmentDoneResult contains the completed appointment.
type MarkAppointmentDoneResult struct {
	Appointment scheduling.Appointment
}

// MarkAppointmentDoneHandler handles the MarkAppointmentDoneCommand.
type MarkAppointmentDoneHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[MarkAppointmentDoneCommand, *MarkAppointmentDoneResult] = (*MarkAppointmentDoneHandler)(nil)

// NewMarkAppointmentDoneHandler creates a new MarkAppointmentDoneHandler.
func NewMarkAppointmentDoneHandler(workspace *application.Workspace, store application.Store) *MarkAppointmentDoneHandler {
	return &MarkAppointmentDoneHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the MarkAppointmentDoneCommand. Marking an appointment
// that is already done is a no-op and records no history step.
func (h *MarkAppointmentDoneHandler) Handle(ctx context.Context, cmd MarkAppointmentDoneCommand) (*MarkAppointmentDoneResult, error) {
	book := h.workspace.Appointments()
	target, err := locate(book, cmd.Date, cmd.Start)
	if err != nil {
		return nil, err
	}
	if target.IsDone() {
		return &MarkAppointmentDoneResult{Appointment: target}, nil
	}

	done := target.MarkAsDone()
	if err := book.Replace(target, done); err != nil {
		return nil, h.fail(fmt.Errorf("failed to mark appointment done: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &MarkAppointmentDoneResult{Appointment: done}, nil
}
