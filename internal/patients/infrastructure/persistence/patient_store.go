package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
)

// PatientStore persists patients in the patients table, keeping insertion order.
//
// Tags are a TEXT[] column on PostgreSQL and a comma-separated TEXT column
// on SQLite. Tags are alphanumeric, so a comma never occurs inside one.
type PatientStore struct {
	conn database.Connection
}

// NewPatientStore creates a new patient store.
func NewPatientStore(conn database.Connection) *PatientStore {
	return &PatientStore{conn: conn}
}

// LoadAll returns every stored patient in insertion order.
func (s *PatientStore) LoadAll(ctx context.Context) ([]domain.Patient, error) {
	query := fmt.Sprintf(`
		SELECT id, name, phone, email, address, %s, created_at
		FROM patients
		ORDER BY position`, s.tagsSelect())

	rows, err := database.ExecutorFromContext(ctx, s.conn).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	patients := make([]domain.Patient, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			details   domain.PatientDetails
			rawTags   string
			createdAt int64
		)
		if err := rows.Scan(&id, &details.Name, &details.Phone, &details.Email, &details.Address, &rawTags, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}

		details.Tags, err = s.decodeTags(rawTags)
		if err != nil {
			return nil, fmt.Errorf("failed to decode tags of patient %s: %w", id, err)
		}

		patient, err := domain.RehydratePatient(id, details, time.UnixMilli(createdAt).UTC())
		if err != nil {
			return nil, fmt.Errorf("invalid stored patient %s: %w", id, err)
		}
		patients = append(patients, patient)
	}
	return patients, rows.Err()
}

// ReplaceAll deletes every stored patient and inserts patients in order.
// Callers run it inside a unit of work.
func (s *PatientStore) ReplaceAll(ctx context.Context, patients []domain.Patient) error {
	exec := database.ExecutorFromContext(ctx, s.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM patients`); err != nil {
		return fmt.Errorf("failed to clear patients: %w", err)
	}

	insert := s.conn.Driver().Rebind(fmt.Sprintf(`
		INSERT INTO patients (id, position, name, phone, email, address, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, %s, ?)`, s.tagsPlaceholder()))
	for i, p := range patients {
		if _, err := exec.Exec(ctx, insert,
			p.ID(),
			i,
			p.Name(),
			p.Phone(),
			p.Email(),
			p.Address(),
			s.encodeTags(p.Tags()),
			p.CreatedAt().UnixMilli(),
		); err != nil {
			return fmt.Errorf("failed to insert patient %s: %w", p.ID(), err)
		}
	}
	return nil
}

func (s *PatientStore) postgres() bool {
	return s.conn.Driver() == database.DriverPostgres
}

// tagsSelect reads tags as text on every driver; PostgreSQL yields its array literal.
func (s *PatientStore) tagsSelect() string {
	if s.postgres() {
		return "tags::text"
	}
	return "tags"
}

func (s *PatientStore) tagsPlaceholder() string {
	if s.postgres() {
		return "?::text::text[]"
	}
	return "?"
}

func (s *PatientStore) encodeTags(tags []string) any {
	if s.postgres() {
		if tags == nil {
			tags = []string{}
		}
		return pq.Array(tags)
	}
	return strings.Join(tags, ",")
}

func (s *PatientStore) decodeTags(raw string) ([]string, error) {
	if s.postgres() {
		var tags pq.StringArray
		if err := tags.Scan(raw); err != nil {
			return nil, err
		}
		return tags, nil
	}
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, ","), nil
}
