package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database/sqlite"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	store := NewStore(conn)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func sampleSnapshot(t *testing.T) application.Snapshot {
	t.Helper()
	alex, err := patients.NewPatient(patients.PatientDetails{Name: "Alex Yeoh", Phone: "87438807", Tags: []string{"friends"}})
	require.NoError(t, err)

	date, err := scheduling.NewDate(time.Now().AddDate(0, 0, 2))
	require.NoError(t, err)
	start, err := scheduling.NewTime(10, 0)
	require.NoError(t, err)
	appt, err := scheduling.NewAppointment(date, start, time.Hour, alex.ID())
	require.NoError(t, err)

	return application.Snapshot{
		Patients:     []patients.Patient{alex},
		Appointments: []scheduling.Appointment{appt},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, sqlite.MemoryPath)
	snapshot := sampleSnapshot(t)

	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Patients, 1)
	require.Len(t, loaded.Appointments, 1)
	assert.True(t, loaded.Patients[0].Equals(snapshot.Patients[0]))
	assert.True(t, loaded.Appointments[0].Equals(snapshot.Appointments[0]))
}

func TestStore_Counts(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, sqlite.MemoryPath)

	patientCount, appointmentCount, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, patientCount)
	assert.Zero(t, appointmentCount)

	require.NoError(t, store.Save(ctx, sampleSnapshot(t)))

	patientCount, appointmentCount, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, patientCount)
	assert.Equal(t, 1, appointmentCount)
}

func TestStore_EmptyDatabase(t *testing.T) {
	loaded, err := openStore(t, sqlite.MemoryPath).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded.Patients)
	assert.Empty(t, loaded.Appointments)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clinic.db")
	snapshot := sampleSnapshot(t)

	require.NoError(t, openStore(t, path).Save(ctx, snapshot))

	loaded, err := openStore(t, path).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Patients, 1)
	assert.Len(t, loaded.Appointments, 1)
}

func TestStore_OpenWorkspacePrunesOrphans(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, sqlite.MemoryPath)
	snapshot := sampleSnapshot(t)
	start, err := scheduling.NewTime(14, 0)
	require.NoError(t, err)
	orphan, err := scheduling.NewAppointment(snapshot.Appointments[0].Date(), start, time.Hour, uuid.New())
	require.NoError(t, err)
	snapshot.Appointments = append(snapshot.Appointments, orphan)
	require.NoError(t, store.Save(ctx, snapshot))

	w, report, err := application.OpenWorkspace(ctx, store, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, w.Appointments().Len())
	assert.Len(t, report.OrphanedAppointments, 1)
}
