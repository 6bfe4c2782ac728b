package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
)

// CancelAppointmentCommand removes the appointment starting at Start on Date.
type CancelAppointmentCommand struct {
	Date  time.Time
	Start string
}

func (CancelAppointmentCommand) CommandName() string { return "cancel_appointment" }

// CancelAppointmentResult contains the removed appointment.
type CancelAppointmentResult struct {
	Appointment scheduling.Appointment
}

// CancelAppointmentHandler handles the CancelAppointmentCommand.
type CancelAppointmentHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[CancelAppointmentCommand, *CancelAppointmentResult] = (*CancelAppointmentHandler)(nil)

// NewCancelAppointmentHandler creates a new CancelAppointmentHandler.
func NewCancelAppointmentHandler(workspace *application.Workspace, store application.Store) *CancelAppointmentHandler {
	return &CancelAppointmentHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the CancelAppointmentCommand.
func (h *CancelAppointmentHandler) Handle(ctx context.Context, cmd CancelAppointmentCommand) (*CancelAppointmentResult, error) {
	book := h.workspace.Appointments()
	target, err := locate(book, cmd.Date, cmd.Start)
	if err != nil {
		return nil, err
	}

	if err := book.Remove(target); err != nil {
		return nil, h.fail(fmt.Errorf("failed to cancel appointment: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &CancelAppointmentResult{Appointment: target}, nil
}
