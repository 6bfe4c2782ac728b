package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tomorrow(t *testing.T) domain.Date {
	t.Helper()
	date, err := domain.NewDate(time.Now().AddDate(0, 0, 1))
	require.NoError(t, err)
	return date
}

func clockTime(t *testing.T, hour, minute int) domain.Time {
	t.Helper()
	clock, err := domain.NewTime(hour, minute)
	require.NoError(t, err)
	return clock
}

// appointmentAt creates an appointment on date from start to end (HH, MM pairs).
func appointmentAt(t *testing.T, date domain.Date, startHour, startMinute, endHour, endMinute int) domain.Appointment {
	t.Helper()
	start := clockTime(t, startHour, startMinute)
	end := clockTime(t, endHour, endMinute)
	appt, err := domain.NewAppointment(date, start, end.Sub(start), uuid.Nil)
	require.NoError(t, err)
	return appt
}

func TestNewAppointment(t *testing.T) {
	date := tomorrow(t)
	patientID := uuid.New()
	start := clockTime(t, 9, 0)

	appt, err := domain.NewAppointment(date, start, domain.DefaultAppointmentDuration, patientID)

	require.NoError(t, err)
	assert.True(t, appt.Date().Equal(date))
	assert.Equal(t, start, appt.StartTime())
	assert.Equal(t, "10:00", appt.EndTime().String())
	assert.Equal(t, patientID, appt.PatientID())
	assert.True(t, appt.HasPatient())
	assert.False(t, appt.IsDone())
	assert.Equal(t, time.Hour, appt.Duration())
	assert.Equal(t, date.String()+"@09:00", appt.ID())
}

func TestNewAppointment_InvalidDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"zero", 0},
		{"negative", -time.Hour},
		{"under a minute", 30 * time.Second},
		{"just under a minute", 59 * time.Second},
		{"partial minute", 90 * time.Second},
		{"minutes and seconds", time.Hour + time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewAppointment(tomorrow(t), clockTime(t, 9, 0), tt.duration, uuid.Nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDuration)
			assert.ErrorIs(t, err, domain.ErrInvalid)
		})
	}
}

func TestNewAppointment_OneMinute(t *testing.T) {
	appt, err := domain.NewAppointment(tomorrow(t), clockTime(t, 9, 0), time.Minute, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, "09:01", appt.EndTime().String())
	assert.True(t, appt.IsOverlapping(appt))
	assert.False(t, appt.IsBefore(appt))
}

func TestNewAppointment_EndsAfterClosing(t *testing.T) {
	_, err := domain.NewAppointment(tomorrow(t), clockTime(t, 21, 30), domain.DefaultAppointmentDuration, uuid.Nil)

	assert.ErrorIs(t, err, domain.ErrTimeOutsideOperatingHours)
}

func TestRehydrateAppointment(t *testing.T) {
	past := domain.RehydrateDate(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))
	start := clockTime(t, 9, 0)
	end := clockTime(t, 9, 30)

	appt, err := domain.RehydrateAppointment(past, start, end, uuid.Nil, true)
	require.NoError(t, err)
	assert.True(t, appt.IsDone())
	assert.False(t, appt.HasPatient())
	assert.False(t, appt.IsUpcoming())

	_, err = domain.RehydrateAppointment(past, end, start, uuid.Nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestAppointment_IsOverlapping(t *testing.T) {
	date := tomorrow(t)
	base := appointmentAt(t, date, 10, 0, 11, 0)

	tests := []struct {
		name     string
		other    domain.Appointment
		overlaps bool
	}{
		{name: "overlapping start", other: appointmentAt(t, date, 9, 30, 10, 30), overlaps: true},
		{name: "overlapping end", other: appointmentAt(t, date, 10, 30, 11, 30), overlaps: true},
		{name: "contained within", other: appointmentAt(t, date, 10, 15, 10, 45), overlaps: true},
		{name: "containing", other: appointmentAt(t, date, 9, 0, 12, 0), overlaps: true},
		{name: "identical", other: base, overlaps: true},
		{name: "one shared minute", other: appointmentAt(t, date, 10, 59, 12, 0), overlaps: true},
		{name: "ends when base starts", other: appointmentAt(t, date, 9, 0, 10, 0), overlaps: false},
		{name: "starts when base ends", other: appointmentAt(t, date, 11, 0, 12, 0), overlaps: false},
		{name: "same time other day", other: appointmentAt(t, date.AddDays(1), 10, 0, 11, 0), overlaps: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.IsOverlapping(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.IsOverlapping(base))
		})
	}
}

func TestAppointment_ExactlyOneRelationOnSameDate(t *testing.T) {
	date := tomorrow(t)
	appointments := []domain.Appointment{
		appointmentAt(t, date, 8, 0, 9, 0),
		appointmentAt(t, date, 8, 30, 9, 30),
		appointmentAt(t, date, 9, 0, 10, 0),
		appointmentAt(t, date, 9, 15, 9, 45),
		appointmentAt(t, date, 12, 0, 14, 0),
		appointmentAt(t, date, 21, 0, 22, 0),
	}

	for _, a := range appointments {
		for _, b := range appointments {
			count := 0
			for _, holds := range []bool{a.IsBefore(b), a.IsAfter(b), a.IsOverlapping(b)} {
				if holds {
					count++
				}
			}
			assert.Equal(t, 1, count, "%s vs %s", a, b)
		}
	}
}

func TestAppointment_OrderAcrossDates(t *testing.T) {
	date := tomorrow(t)
	late := appointmentAt(t, date, 21, 0, 22, 0)
	early := appointmentAt(t, date.AddDays(1), 8, 0, 9, 0)

	assert.True(t, late.IsBefore(early))
	assert.True(t, early.IsAfter(late))
	assert.False(t, late.IsOverlapping(early))
}

func TestCompareAppointments(t *testing.T) {
	date := tomorrow(t)
	first := appointmentAt(t, date, 9, 0, 10, 0)
	second := appointmentAt(t, date, 10, 0, 11, 0)
	overlapping := appointmentAt(t, date, 9, 30, 10, 30)

	assert.Equal(t, -1, domain.CompareAppointments(first, second))
	assert.Equal(t, 1, domain.CompareAppointments(second, first))
	assert.Equal(t, 0, domain.CompareAppointments(first, overlapping))
	assert.Equal(t, 0, domain.CompareAppointments(first, first))
}

func TestAppointment_MarkAsDone(t *testing.T) {
	appt := appointmentAt(t, tomorrow(t), 9, 0, 10, 0)

	done := appt.MarkAsDone()

	assert.True(t, done.IsDone())
	assert.False(t, appt.IsDone())
	assert.True(t, done.HasSameSlot(appt))
	assert.False(t, done.Equals(appt))
}

func TestAppointment_WithPatient(t *testing.T) {
	appt := appointmentAt(t, tomorrow(t), 9, 0, 10, 0)
	patientID := uuid.New()

	attached := appt.WithPatient(patientID)
	detached := attached.WithoutPatient()

	assert.Equal(t, patientID, attached.PatientID())
	assert.False(t, appt.HasPatient())
	assert.True(t, detached.Equals(appt))
}
