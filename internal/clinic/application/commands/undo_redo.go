package commands

import (
	"context"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
)

// UndoCommand reverts the most recent committed change.
type UndoCommand struct{}

func (UndoCommand) CommandName() string { return "undo" }

// RedoCommand reapplies the most recently undone change.
type RedoCommand struct{}

func (RedoCommand) CommandName() string { return "redo" }

// HistoryResult describes the workspace after moving through history.
type HistoryResult struct {
	Patients     int
	Appointments int
	CanUndo      bool
	CanRedo      bool
}

// UndoHandler handles the UndoCommand.
type UndoHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[UndoCommand, *HistoryResult] = (*UndoHandler)(nil)

// NewUndoHandler creates a new UndoHandler.
func NewUndoHandler(workspace *application.Workspace, store application.Store) *UndoHandler {
	return &UndoHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the UndoCommand.
func (h *UndoHandler) Handle(ctx context.Context, _ UndoCommand) (*HistoryResult, error) {
	if err := h.workspace.Undo(); err != nil {
		return nil, err
	}
	if err := h.save(ctx); err != nil {
		return nil, err
	}
	return historyResult(h.workspace), nil
}

// RedoHandler handles the RedoCommand.
type RedoHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[RedoCommand, *HistoryResult] = (*RedoHandler)(nil)

// NewRedoHandler creates a new RedoHandler.
func NewRedoHandler(workspace *application.Workspace, store application.Store) *RedoHandler {
	return &RedoHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the RedoCommand.
func (h *RedoHandler) Handle(ctx context.Context, _ RedoCommand) (*HistoryResult, error) {
	if err := h.workspace.Redo(); err != nil {
		return nil, err
	}
	if err := h.save(ctx); err != nil {
		return nil, err
	}
	return historyResult(h.workspace), nil
}

func historyResult(w *application.Workspace) *HistoryResult {
	return &HistoryResult{
		Patients:     w.Patients().Len(),
		Appointments: w.Appointments().Len(),
		CanUndo:      w.CanUndo(),
		CanRedo:      w.CanRedo(),
	}
}
