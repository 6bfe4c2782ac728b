package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
)

const dateLayout = "2006-01-02"

// AppointmentStore persists appointments in the appointments table.
type AppointmentStore struct {
	conn database.Connection
}

// NewAppointmentStore creates a new appointment store.
func NewAppointmentStore(conn database.Connection) *AppointmentStore {
	return &AppointmentStore{conn: conn}
}

// LoadAll returns every stored appointment in time order. Past appointments
// are loaded as they are; only the stored interval is validated.
func (s *AppointmentStore) LoadAll(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := database.ExecutorFromContext(ctx, s.conn).Query(ctx, `
		SELECT id, appointment_date, start_minute, end_minute, patient_id, done
		FROM appointments
		ORDER BY appointment_date, start_minute`)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var (
			id          string
			date        string
			startMinute int
			endMinute   int
			patientID   uuid.NullUUID
			done        bool
		)
		if err := rows.Scan(&id, &date, &startMinute, &endMinute, &patientID, &done); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}

		appointment, err := rowToAppointment(date, startMinute, endMinute, patientID, done)
		if err != nil {
			return nil, fmt.Errorf("invalid stored appointment %s: %w", id, err)
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

// ReplaceAll deletes every stored appointment and inserts appointments.
// Callers run it inside a unit of work.
func (s *AppointmentStore) ReplaceAll(ctx context.Context, appointments []domain.Appointment) error {
	exec := database.ExecutorFromContext(ctx, s.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM appointments`); err != nil {
		return fmt.Errorf("failed to clear appointments: %w", err)
	}

	insert := s.conn.Driver().Rebind(`
		INSERT INTO appointments (id, appointment_date, start_minute, end_minute, patient_id, done)
		VALUES (?, ?, ?, ?, ?, ?)`)
	for _, a := range appointments {
		patientID := uuid.NullUUID{UUID: a.PatientID(), Valid: a.HasPatient()}
		if _, err := exec.Exec(ctx, insert,
			a.ID(),
			a.Date().String(),
			a.StartTime().Minutes(),
			a.EndTime().Minutes(),
			patientID,
			a.IsDone(),
		); err != nil {
			return fmt.Errorf("failed to insert appointment %s: %w", a.ID(), err)
		}
	}
	return nil
}

func rowToAppointment(date string, startMinute, endMinute int, patientID uuid.NullUUID, done bool) (domain.Appointment, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return domain.Appointment{}, err
	}
	start, err := domain.RehydrateTime(startMinute)
	if err != nil {
		return domain.Appointment{}, err
	}
	end, err := domain.RehydrateTime(endMinute)
	if err != nil {
		return domain.Appointment{}, err
	}

	id := uuid.Nil
	if patientID.Valid {
		id = patientID.UUID
	}
	return domain.RehydrateAppointment(domain.RehydrateDate(day), start, end, id, done)
}
