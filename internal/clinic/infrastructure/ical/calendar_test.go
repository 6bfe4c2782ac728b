package ical

import (
	"bytes"
	"strings"
	"testing"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
)

func sampleAppointments() []queries.AppointmentDTO {
	day := time.Date(2030, time.March, 4, 0, 0, 0, 0, time.UTC)
	return []queries.AppointmentDTO{
		{
			ID:          "2030-03-04@09:00",
			StartsAt:    day.Add(9 * time.Hour),
			EndsAt:      day.Add(10 * time.Hour),
			PatientID:   uuid.New(),
			PatientName: "Alex Yeoh",
		},
		{
			ID:       "2030-03-04@13:00",
			StartsAt: day.Add(13 * time.Hour),
			EndsAt:   day.Add(13*time.Hour + 30*time.Minute),
			Done:     true,
		},
	}
}

func TestNewCalendar(t *testing.T) {
	stamp := time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)

	cal := NewCalendar(sampleAppointments(), stamp)

	assert.Equal(t, "2.0", cal.Props.Get(goical.PropVersion).Value)
	assert.Contains(t, cal.Props.Get(goical.PropProductID).Value, "clinicdesk")

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "2030-03-04@09:00@clinicdesk", first.Props.Get(goical.PropUID).Value)
	assert.Equal(t, "Appointment: Alex Yeoh", first.Props.Get(goical.PropSummary).Value)
	assert.Equal(t, "1", first.Props.Get(PropXClinicDesk).Value)

	start, err := first.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 9, start.Hour())
	end, err := first.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))

	second := events[1]
	assert.Equal(t, "Appointment (unassigned)", second.Props.Get(goical.PropSummary).Value)
	assert.Equal(t, "Status: Done", second.Props.Get(goical.PropDescription).Value)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, sampleAppointments(), time.Now()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))

	decoded, err := goical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)
	assert.Len(t, decoded.Events(), 2)
}
