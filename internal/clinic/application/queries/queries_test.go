package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
)

type fixture struct {
	workspace *application.Workspace
	tomorrow  time.Time
	alex      patients.Patient
	bernice   patients.Patient
}

// newFixture books Alex at 09:00-10:00 (done) and 20:00-21:00 tomorrow,
// and Bernice at 13:00-14:00 the day after.
func newFixture(t *testing.T) fixture {
	t.Helper()
	w := application.NewWorkspace()
	alex, err := patients.NewPatient(patients.PatientDetails{Name: "Alex Yeoh", Phone: "91234567", Tags: []string{"diabetic"}})
	require.NoError(t, err)
	bernice, err := patients.NewPatient(patients.PatientDetails{Name: "Bernice Yu", Phone: "99272758"})
	require.NoError(t, err)
	require.NoError(t, w.Patients().Add(alex))
	require.NoError(t, w.Patients().Add(bernice))

	tomorrow := time.Now().AddDate(0, 0, 1)
	book := func(day time.Time, hour int, patientID uuid.UUID, done bool) {
		date, err := scheduling.NewDate(day)
		require.NoError(t, err)
		start, err := scheduling.NewTime(hour, 0)
		require.NoError(t, err)
		a, err := scheduling.NewAppointment(date, start, time.Hour, patientID)
		require.NoError(t, err)
		if done {
			a = a.MarkAsDone()
		}
		require.NoError(t, w.Appointments().Add(a))
	}
	book(tomorrow, 9, alex.ID(), true)
	book(tomorrow, 20, alex.ID(), false)
	book(tomorrow.AddDate(0, 0, 1), 13, bernice.ID(), false)
	w.Commit()

	return fixture{workspace: w, tomorrow: tomorrow, alex: alex, bernice: bernice}
}

func TestListPatientsHandler(t *testing.T) {
	f := newFixture(t)
	handler := NewListPatientsHandler(f.workspace)

	all, err := handler.Handle(context.Background(), ListPatientsQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alex Yeoh", all[0].Name)
	assert.Equal(t, 2, all[0].Appointments)
	assert.Equal(t, 1, all[1].Appointments)

	byTag, err := handler.Handle(context.Background(), ListPatientsQuery{Keyword: "diabetic"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, f.alex.ID(), byTag[0].ID)

	none, err := handler.Handle(context.Background(), ListPatientsQuery{Keyword: "charlotte"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAppointmentsHandler(t *testing.T) {
	f := newFixture(t)
	handler := NewListAppointmentsHandler(f.workspace)

	tests := []struct {
		name  string
		query ListAppointmentsQuery
		want  []string
	}{
		{name: "all", query: ListAppointmentsQuery{}, want: []string{"09:00", "20:00", "13:00"}},
		{name: "by date", query: ListAppointmentsQuery{Date: f.tomorrow}, want: []string{"09:00", "20:00"}},
		{name: "by patient", query: ListAppointmentsQuery{PatientID: f.bernice.ID()}, want: []string{"13:00"}},
		{name: "pending", query: ListAppointmentsQuery{PendingOnly: true}, want: []string{"20:00", "13:00"}},
		{name: "upcoming", query: ListAppointmentsQuery{UpcomingOnly: true}, want: []string{"09:00", "20:00", "13:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handler.Handle(context.Background(), tt.query)
			require.NoError(t, err)

			starts := make([]string, 0, len(got))
			for _, a := range got {
				starts = append(starts, a.Start)
			}
			assert.Equal(t, tt.want, starts)
		})
	}
}

func TestListAppointmentsHandler_ResolvesPatientNames(t *testing.T) {
	f := newFixture(t)

	got, err := NewListAppointmentsHandler(f.workspace).Handle(context.Background(), ListAppointmentsQuery{Date: f.tomorrow})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alex Yeoh", got[0].PatientName)
	assert.True(t, got[0].Done)
	assert.Equal(t, 60, got[0].DurationMin)
}

func TestFindFreeSlotsHandler(t *testing.T) {
	f := newFixture(t)
	handler := NewFindFreeSlotsHandler(f.workspace)

	got, err := handler.Handle(context.Background(), FindFreeSlotsQuery{Date: f.tomorrow})

	require.NoError(t, err)
	require.Len(t, got.Slots, 3)
	assert.Equal(t, TimeSlotDTO{Start: "08:00", End: "09:00", DurationMin: 60}, got.Slots[0])
	assert.Equal(t, TimeSlotDTO{Start: "10:00", End: "20:00", DurationMin: 600}, got.Slots[1])
	assert.Equal(t, TimeSlotDTO{Start: "21:00", End: "22:00", DurationMin: 60}, got.Slots[2])
	assert.Equal(t, 12*time.Hour, got.TotalFree)
}

func TestFindFreeSlotsHandler_MinDuration(t *testing.T) {
	f := newFixture(t)

	got, err := NewFindFreeSlotsHandler(f.workspace).Handle(context.Background(), FindFreeSlotsQuery{
		Date:        f.tomorrow,
		MinDuration: 2 * time.Hour,
	})

	require.NoError(t, err)
	require.Len(t, got.Slots, 1)
	assert.Equal(t, "10:00", got.Slots[0].Start)
}

func TestFindFreeSlotsHandler_CustomWindow(t *testing.T) {
	f := newFixture(t)
	start, err := scheduling.NewTime(9, 0)
	require.NoError(t, err)
	end, err := scheduling.NewTime(12, 0)
	require.NoError(t, err)
	window, err := scheduling.NewTimeInterval(start, end)
	require.NoError(t, err)

	got, err := NewFindFreeSlotsHandler(f.workspace, window).Handle(context.Background(), FindFreeSlotsQuery{Date: f.tomorrow})

	require.NoError(t, err)
	require.Len(t, got.Slots, 1)
	assert.Equal(t, TimeSlotDTO{Start: "10:00", End: "12:00", DurationMin: 120}, got.Slots[0])
}

func TestFindFreeSlotsHandler_EmptyDay(t *testing.T) {
	f := newFixture(t)

	got, err := NewFindFreeSlotsHandler(f.workspace).Handle(context.Background(), FindFreeSlotsQuery{
		Date: f.tomorrow.AddDate(0, 0, 7),
	})

	require.NoError(t, err)
	assert.Equal(t, []TimeSlotDTO{{Start: "08:00", End: "22:00", DurationMin: 840}}, got.Slots)
}
