package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/migrations"
)

// setupPatientTestDB opens an in-memory SQLite database with the schema applied.
func setupPatientTestDB(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func TestPatientStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewPatientStore(setupPatientTestDB(t))

	bernice, err := domain.NewPatient(domain.PatientDetails{Name: "Bernice Yu", Phone: "99272758", Tags: []string{"colleagues", "friends"}})
	require.NoError(t, err)
	alex, err := domain.NewPatient(domain.PatientDetails{Name: "Alex Yeoh", Phone: "87438807", Email: "alexyeoh@example.com", Address: "Blk 30 Geylang Street 29"})
	require.NoError(t, err)

	require.NoError(t, store.ReplaceAll(ctx, []domain.Patient{bernice, alex}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.True(t, loaded[0].Equals(bernice), "insertion order is kept")
	assert.True(t, loaded[1].Equals(alex))
	assert.Equal(t, []string{"colleagues", "friends"}, loaded[0].Tags())
	assert.Empty(t, loaded[1].Tags())
	assert.Equal(t, alex.CreatedAt().UnixMilli(), loaded[1].CreatedAt().UnixMilli())
}

func TestPatientStore_ReplaceAll_RemovesMissing(t *testing.T) {
	ctx := context.Background()
	store := NewPatientStore(setupPatientTestDB(t))

	alex, err := domain.NewPatient(domain.PatientDetails{Name: "Alex Yeoh", Phone: "87438807"})
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(ctx, []domain.Patient{alex}))

	require.NoError(t, store.ReplaceAll(ctx, nil))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
