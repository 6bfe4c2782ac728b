package commands

import (
	"context"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
)

// ClearAllCommand empties both collections as one undoable step.
type ClearAllCommand struct{}

func (ClearAllCommand) CommandName() string { return "clear_all" }

// ClearAllResult reports how much was removed.
type ClearAllResult struct {
	RemovedPatients     int
	RemovedAppointments int
}

// ClearAllHandler handles the ClearAllCommand.
type ClearAllHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[ClearAllCommand, *ClearAllResult] = (*ClearAllHandler)(nil)

// NewClearAllHandler creates a new ClearAllHandler.
func NewClearAllHandler(workspace *application.Workspace, store application.Store) *ClearAllHandler {
	return &ClearAllHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the ClearAllCommand.
func (h *ClearAllHandler) Handle(ctx context.Context, _ ClearAllCommand) (*ClearAllResult, error) {
	result := &ClearAllResult{
		RemovedPatients:     h.workspace.Patients().Len(),
		RemovedAppointments: h.workspace.Appointments().Len(),
	}

	h.workspace.Patients().Restore(nil)
	h.workspace.Appointments().Restore(nil)

	if err := h.commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}
