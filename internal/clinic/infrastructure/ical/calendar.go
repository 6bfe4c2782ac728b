// Package ical renders appointments as an iCalendar feed.
package ical

import (
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
)

const productID = "-//clinicdesk//Appointments//EN"

// PropXClinicDesk marks events produced by clinicdesk.
const PropXClinicDesk = "X-CLINICDESK"

// NewCalendar builds a VCALENDAR with one VEVENT per appointment.
// stamp is written as DTSTAMP on every event.
func NewCalendar(appointments []queries.AppointmentDTO, stamp time.Time) *goical.Calendar {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	for _, a := range appointments {
		cal.Children = append(cal.Children, toEvent(a, stamp).Component)
	}
	return cal
}

// Encode writes the appointments to w in iCalendar format. A calendar
// needs at least one event to be valid.
func Encode(w io.Writer, appointments []queries.AppointmentDTO, stamp time.Time) error {
	if err := goical.NewEncoder(w).Encode(NewCalendar(appointments, stamp)); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func toEvent(a queries.AppointmentDTO, stamp time.Time) *goical.Event {
	event := goical.NewEvent()
	event.Props.SetText(goical.PropUID, a.ID+"@clinicdesk")
	event.Props.SetDateTime(goical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(goical.PropDateTimeStart, a.StartsAt.UTC())
	event.Props.SetDateTime(goical.PropDateTimeEnd, a.EndsAt.UTC())
	event.Props.SetText(goical.PropSummary, summary(a))

	description := "Status: Pending"
	if a.Done {
		description = "Status: Done"
	}
	event.Props.SetText(goical.PropStatus, "CONFIRMED")
	event.Props.SetText(goical.PropDescription, description)

	marker := goical.NewProp(PropXClinicDesk)
	marker.Value = "1"
	event.Props[PropXClinicDesk] = []goical.Prop{*marker}
	return event
}

func summary(a queries.AppointmentDTO) string {
	if a.PatientName == "" {
		return "Appointment (unassigned)"
	}
	return "Appointment: " + a.PatientName
}
