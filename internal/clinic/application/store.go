package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clinic "github.com/felixgeelhaar/clinicdesk/internal/clinic/domain"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

// Store persists both collections as a whole.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// LoadReport summarises what was dropped while opening a workspace.
type LoadReport struct {
	DuplicatePatients    []patients.Patient
	OrphanedAppointments []scheduling.Appointment
	ConflictingBookings  []scheduling.Appointment
}

// Dropped reports whether any stored record was left out.
func (r LoadReport) Dropped() bool {
	return len(r.DuplicatePatients)+len(r.OrphanedAppointments)+len(r.ConflictingBookings) > 0
}

// OpenWorkspace loads the stored collections into a fresh workspace.
// Records that would break an invariant are skipped and logged, and
// appointments referring to unknown patients are pruned.
func OpenWorkspace(ctx context.Context, store Store, logger *slog.Logger) (*Workspace, LoadReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	stored, err := observability.TimeOperationResult(logger, "load_clinic_data", func() (Snapshot, error) {
		return store.Load(ctx)
	})
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to load clinic data: %w", err)
	}

	var report LoadReport
	patientBook := patients.NewPatientBook()
	for _, p := range stored.Patients {
		if err := patientBook.Add(p); err != nil {
			if !errors.Is(err, patients.ErrDuplicatePatient) {
				return nil, LoadReport{}, err
			}
			logger.Warn("skipping duplicate patient", "patient_id", p.ID(), "name", p.Name())
			report.DuplicatePatients = append(report.DuplicatePatients, p)
		}
	}

	checker := clinic.NewConsistencyChecker()
	known := patientBook.Patients()
	for _, a := range checker.Orphans(known, stored.Appointments) {
		logger.Warn("pruning appointment for unknown patient", "appointment", a.ID(), "patient_id", a.PatientID())
		report.OrphanedAppointments = append(report.OrphanedAppointments, a)
	}

	appointmentBook := scheduling.NewAppointmentBook()
	for _, a := range checker.Reconcile(known, stored.Appointments) {
		if err := appointmentBook.Add(a); err != nil {
			if !errors.Is(err, scheduling.ErrAppointmentOverlap) {
				return nil, LoadReport{}, err
			}
			logger.Warn("skipping overlapping appointment", "appointment", a.ID())
			report.ConflictingBookings = append(report.ConflictingBookings, a)
		}
	}

	w := NewWorkspace()
	if err := w.Reset(Snapshot{Patients: known, Appointments: appointmentBook.Appointments()}); err != nil {
		return nil, LoadReport{}, err
	}

	logger.Info("workspace opened",
		"patients", w.Patients().Len(),
		"appointments", w.Appointments().Len(),
		"dropped", report.Dropped(),
	)
	return w, report, nil
}
