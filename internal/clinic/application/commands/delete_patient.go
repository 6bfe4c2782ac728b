package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/google/uuid"
)

// DeletePatientCommand removes a patient and every appointment booked for them.
type DeletePatientCommand struct {
	PatientID uuid.UUID
}

func (DeletePatientCommand) CommandName() string { return "delete_patient" }

// DeletePatientResult reports what was removed.
type DeletePatientResult struct {
	Patient             patients.Patient
	RemovedAppointments int
}

// DeletePatientHandler handles the DeletePatientCommand.
type DeletePatientHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[DeletePatientCommand, *DeletePatientResult] = (*DeletePatientHandler)(nil)

// NewDeletePatientHandler creates a new DeletePatientHandler.
func NewDeletePatientHandler(workspace *application.Workspace, store application.Store) *DeletePatientHandler {
	return &DeletePatientHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the DeletePatientCommand. The patient and their
// appointments disappear in a single undoable step.
func (h *DeletePatientHandler) Handle(ctx context.Context, cmd DeletePatientCommand) (*DeletePatientResult, error) {
	target, err := h.workspace.Patients().FindByID(cmd.PatientID)
	if err != nil {
		return nil, err
	}

	appointments := h.workspace.Appointments()
	booked := appointments.ForPatient(target.ID())
	for _, a := range booked {
		if err := appointments.Remove(a); err != nil {
			return nil, h.fail(fmt.Errorf("failed to remove appointment %s: %w", a.ID(), err))
		}
	}

	if err := h.workspace.Patients().Remove(target); err != nil {
		return nil, h.fail(fmt.Errorf("failed to delete patient: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &DeletePatientResult{Patient: target, RemovedAppointments: len(booked)}, nil
}
