package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/google/uuid"
)

// AddPatientCommand contains the data needed to register a patient.
type AddPatientCommand struct {
	Details patients.PatientDetails
}

func (AddPatientCommand) CommandName() string { return "add_patient" }

// AddPatientResult contains the result of registering a patient.
type AddPatientResult struct {
	PatientID uuid.UUID
	Patient   patients.Patient
}

// AddPatientHandler handles the AddPatientCommand.
type AddPatientHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[AddPatientCommand, *AddPatientResult] = (*AddPatientHandler)(nil)

// NewAddPatientHandler creates a new AddPatientHandler.
func NewAddPatientHandler(workspace *application.Workspace, store application.Store) *AddPatientHandler {
	return &AddPatientHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the AddPatientCommand.
func (h *AddPatientHandler) Handle(ctx context.Context, cmd AddPatientCommand) (*AddPatientResult, error) {
	patient, err := patients.NewPatient(cmd.Details)
	if err != nil {
		return nil, err
	}

	if err := h.workspace.Patients().Add(patient); err != nil {
		return nil, h.fail(fmt.Errorf("failed to add patient: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &AddPatientResult{PatientID: patient.ID(), Patient: patient}, nil
}
