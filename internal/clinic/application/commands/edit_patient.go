package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/google/uuid"
)

// EditPatientCommand replaces the details of an existing patient.
// Empty fields keep their current value; Tags replaces the tag set when non-nil.
// ClearEmail and ClearAddress remove the optional fields and win over Email and Address.
type EditPatientCommand struct {
	PatientID    uuid.UUID
	Name         string
	Phone        string
	Email        string
	Address      string
	Tags         []string
	ClearEmail   bool
	ClearAddress bool
}

func (EditPatientCommand) CommandName() string { return "edit_patient" }

// EditPatientResult contains the edited patient.
type EditPatientResult struct {
	Patient patients.Patient
}

// EditPatientHandler handles the EditPatientCommand.
type EditPatientHandler struct {
	committer
}

var _ sharedApplication.CommandHandler[EditPatientCommand, *EditPatientResult] = (*EditPatientHandler)(nil)

// NewEditPatientHandler creates a new EditPatientHandler.
func NewEditPatientHandler(workspace *application.Workspace, store application.Store) *EditPatientHandler {
	return &EditPatientHandler{committer{workspace: workspace, store: store}}
}

// Handle executes the EditPatientCommand. Appointments refer to patients by
// ID, so they need no update.
func (h *EditPatientHandler) Handle(ctx context.Context, cmd EditPatientCommand) (*EditPatientResult, error) {
	book := h.workspace.Patients()
	target, err := book.FindByID(cmd.PatientID)
	if err != nil {
		return nil, err
	}

	details := target.Details()
	if cmd.Name != "" {
		details.Name = cmd.Name
	}
	if cmd.Phone != "" {
		details.Phone = cmd.Phone
	}
	switch {
	case cmd.ClearEmail:
		details.Email = ""
	case cmd.Email != "":
		details.Email = cmd.Email
	}
	switch {
	case cmd.ClearAddress:
		details.Address = ""
	case cmd.Address != "":
		details.Address = cmd.Address
	}
	if cmd.Tags != nil {
		details.Tags = cmd.Tags
	}

	edited, err := target.WithDetails(details)
	if err != nil {
		return nil, err
	}

	if err := book.Replace(target, edited); err != nil {
		return nil, h.fail(fmt.Errorf("failed to edit patient: %w", err))
	}

	if err := h.commit(ctx); err != nil {
		return nil, err
	}

	return &EditPatientResult{Patient: edited}, nil
}
