// Package persistence stores the clinic workspace in a SQL database.
package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patientPersistence "github.com/felixgeelhaar/clinicdesk/internal/patients/infrastructure/persistence"
	schedulingPersistence "github.com/felixgeelhaar/clinicdesk/internal/scheduling/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/migrations"
)

// Store implements application.Store on a database connection.
type Store struct {
	conn         database.Connection
	uow          sharedApplication.UnitOfWork
	patients     *patientPersistence.PatientStore
	appointments *schedulingPersistence.AppointmentStore
}

var _ application.Store = (*Store)(nil)

// NewStore creates a store over conn. Call Migrate before first use.
func NewStore(conn database.Connection) *Store {
	return &Store{
		conn:         conn,
		uow:          database.NewUnitOfWork(conn),
		patients:     patientPersistence.NewPatientStore(conn),
		appointments: schedulingPersistence.NewAppointmentStore(conn),
	}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.conn)
}

// Load reads both collections.
func (s *Store) Load(ctx context.Context) (application.Snapshot, error) {
	patients, err := s.patients.LoadAll(ctx)
	if err != nil {
		return application.Snapshot{}, err
	}
	appointments, err := s.appointments.LoadAll(ctx)
	if err != nil {
		return application.Snapshot{}, err
	}
	return application.Snapshot{Patients: patients, Appointments: appointments}, nil
}

// Counts returns the number of stored patients and appointments.
func (s *Store) Counts(ctx context.Context) (patients, appointments int, err error) {
	exec := database.ExecutorFromContext(ctx, s.conn)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&patients); err != nil {
		return 0, 0, fmt.Errorf("failed to count patients: %w", err)
	}
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&appointments); err != nil {
		return 0, 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return patients, appointments, nil
}

// Save replaces the stored collections with snapshot in one transaction.
func (s *Store) Save(ctx context.Context, snapshot application.Snapshot) error {
	err := sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		if err := s.patients.ReplaceAll(txCtx, snapshot.Patients); err != nil {
			return err
		}
		return s.appointments.ReplaceAll(txCtx, snapshot.Appointments)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
