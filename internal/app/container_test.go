package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/felixgeelhaar/clinicdesk/pkg/config"
	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

func testConfig(path string) *config.Config {
	return &config.Config{
		AppEnv:          "test",
		DatabaseDriver:  "sqlite",
		SQLitePath:      path,
		OperatingStart:  "08:00",
		OperatingEnd:    "22:00",
		DefaultDuration: time.Hour,
	}
}

func TestNewContainer(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(ctx, testConfig(":memory:"), observability.DiscardLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.DBConn)
	assert.Equal(t, "sqlite", c.DBDriver.String())
	assert.Equal(t, 0, c.Workspace.Patients().Len())
	assert.NotNil(t, c.AddPatientHandler)
	assert.NotNil(t, c.FindFreeSlotsHandler)
	assert.Equal(t, "08:00-22:00", c.OperatingHours.String())
}

func TestNewContainer_InvalidOperatingHours(t *testing.T) {
	cfg := testConfig(":memory:")
	cfg.OperatingStart = "07:00"

	_, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())

	assert.ErrorIs(t, err, scheduling.ErrTimeOutsideOperatingHours)
}

func TestContainer_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(filepath.Join(t.TempDir(), "clinic.db"))
	cfg.OperatingStart = "09:00"
	cfg.OperatingEnd = "17:00"

	first, err := NewContainer(ctx, cfg, observability.DiscardLogger())
	require.NoError(t, err)
	added, err := first.AddPatientHandler.Handle(ctx, commands.AddPatientCommand{
		Details: patients.PatientDetails{Name: "Alex Yeoh", Phone: "87438807"},
	})
	require.NoError(t, err)
	tomorrow := time.Now().AddDate(0, 0, 1)
	_, err = first.ScheduleAppointmentHandler.Handle(ctx, commands.ScheduleAppointmentCommand{
		Date:      tomorrow,
		Start:     "10:00",
		PatientID: added.PatientID,
	})
	require.NoError(t, err)
	first.Close()

	second, err := NewContainer(ctx, cfg, observability.DiscardLogger())
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, 1, second.Workspace.Patients().Len())
	assert.Equal(t, 1, second.Workspace.Appointments().Len())

	free, err := second.FindFreeSlotsHandler.Handle(ctx, queries.FindFreeSlotsQuery{Date: tomorrow})
	require.NoError(t, err)
	require.Len(t, free.Slots, 2)
	assert.Equal(t, "09:00", free.Slots[0].Start)
	assert.Equal(t, "11:00", free.Slots[1].Start)
	assert.Equal(t, "17:00", free.Slots[1].End)
}

func TestContainer_Health(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(":memory:"), observability.DiscardLogger())
	require.NoError(t, err)
	defer c.Close()

	results := c.Health.Check(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, observability.HealthStatusHealthy, observability.OverallStatus(results))
}

func TestContainer_Health_UnsavedChanges(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, testConfig(":memory:"), observability.DiscardLogger())
	require.NoError(t, err)
	defer c.Close()

	alex, err := patients.NewPatient(patients.PatientDetails{Name: "Alex Yeoh", Phone: "87438807"})
	require.NoError(t, err)
	require.NoError(t, c.Workspace.Patients().Add(alex))

	results := c.Health.Check(ctx)

	assert.Equal(t, observability.HealthStatusDegraded, observability.OverallStatus(results))
	for _, result := range results {
		if result.Name == "storage" {
			assert.Equal(t, observability.HealthStatusDegraded, result.Status)
			assert.Contains(t, result.Message, "unsaved changes")
		}
	}
}
