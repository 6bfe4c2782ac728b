// Package application coordinates the patient and appointment collections
// and their shared undo history.
package application

import (
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	shared "github.com/felixgeelhaar/clinicdesk/internal/shared/domain"
)

// Snapshot is a value copy of both collections.
type Snapshot struct {
	Patients     []patients.Patient
	Appointments []scheduling.Appointment
}

// Workspace owns the live patient and appointment books together with one
// history per book. The histories always move together.
type Workspace struct {
	patients           *patients.PatientBook
	appointments       *scheduling.AppointmentBook
	patientHistory     *shared.History[[]patients.Patient]
	appointmentHistory *shared.History[[]scheduling.Appointment]
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	w := &Workspace{
		patients:     patients.NewPatientBook(),
		appointments: scheduling.NewAppointmentBook(),
	}
	w.patientHistory = shared.NewHistory[[]patients.Patient](w.patients)
	w.appointmentHistory = shared.NewHistory[[]scheduling.Appointment](w.appointments)
	return w
}

// Patients returns the live patient book.
func (w *Workspace) Patients() *patients.PatientBook { return w.patients }

// Appointments returns the live appointment book.
func (w *Workspace) Appointments() *scheduling.AppointmentBook { return w.appointments }

// Commit records the current contents of both books as one undoable step.
func (w *Workspace) Commit() {
	w.patientHistory.Commit()
	w.appointmentHistory.Commit()
}

// Undo returns both books to the previous committed step. Nothing changes
// when either history has no earlier step.
func (w *Workspace) Undo() error {
	if !w.CanUndo() {
		return shared.ErrNothingToUndo
	}
	if err := w.patientHistory.Undo(); err != nil {
		return err
	}
	return w.appointmentHistory.Undo()
}

// Redo reapplies the most recently undone step to both books.
func (w *Workspace) Redo() error {
	if !w.CanRedo() {
		return shared.ErrNothingToRedo
	}
	if err := w.patientHistory.Redo(); err != nil {
		return err
	}
	return w.appointmentHistory.Redo()
}

// CanUndo reports whether both histories have an earlier step.
func (w *Workspace) CanUndo() bool {
	return w.patientHistory.CanUndo() && w.appointmentHistory.CanUndo()
}

// CanRedo reports whether both histories have an undone step.
func (w *Workspace) CanRedo() bool {
	return w.patientHistory.CanRedo() && w.appointmentHistory.CanRedo()
}

// Discard drops uncommitted changes by restoring the current committed step.
func (w *Workspace) Discard() {
	w.patientHistory.Revert()
	w.appointmentHistory.Revert()
}

// Snapshot copies both books.
func (w *Workspace) Snapshot() Snapshot {
	return Snapshot{
		Patients:     w.patients.Snapshot(),
		Appointments: w.appointments.Snapshot(),
	}
}

// Reset replaces both books with snapshot and starts a fresh history.
// The snapshot is validated; on error neither book changes.
func (w *Workspace) Reset(snapshot Snapshot) error {
	next := scheduling.NewAppointmentBook()
	if err := next.ResetData(snapshot.Appointments); err != nil {
		return err
	}
	if err := w.patients.ResetData(snapshot.Patients); err != nil {
		return err
	}
	w.appointments.Restore(next.Snapshot())
	w.patientHistory.Reset()
	w.appointmentHistory.Reset()
	return nil
}
