package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDuration = fmt.Errorf("%w: appointment duration must be a positive whole number of minutes", ErrInvalid)

// DefaultAppointmentDuration is the length of an appointment when none is given.
const DefaultAppointmentDuration = 60 * time.Minute

// Appointment is an immutable booking of a time slot on a date.
// The patient is referenced by ID only; uuid.Nil means no patient is attached.
type Appointment struct {
	date      Date
	startTime Time
	endTime   Time
	patientID uuid.UUID
	done      bool
}

// NewAppointment creates an appointment starting at startTime and lasting duration.
// Time has minute resolution, so duration must be a whole number of minutes.
func NewAppointment(date Date, startTime Time, duration time.Duration, patientID uuid.UUID) (Appointment, error) {
	if duration < time.Minute || duration%time.Minute != 0 {
		return Appointment{}, ErrInvalidDuration
	}
	endTime, err := startTime.Add(duration)
	if err != nil {
		return Appointment{}, err
	}
	return Appointment{
		date:      date,
		startTime: startTime,
		endTime:   endTime,
		patientID: patientID,
	}, nil
}

// RehydrateAppointment recreates an appointment from persisted state.
func RehydrateAppointment(date Date, startTime, endTime Time, patientID uuid.UUID, done bool) (Appointment, error) {
	if !startTime.Before(endTime) {
		return Appointment{}, ErrInvalidTimeRange
	}
	return Appointment{
		date:      date,
		startTime: startTime,
		endTime:   endTime,
		patientID: patientID,
		done:      done,
	}, nil
}

// Getters
func (a Appointment) Date() Date           { return a.date }
func (a Appointment) StartTime() Time      { return a.startTime }
func (a Appointment) EndTime() Time        { return a.endTime }
func (a Appointment) PatientID() uuid.UUID { return a.patientID }
func (a Appointment) HasPatient() bool     { return a.patientID != uuid.Nil }
func (a Appointment) IsDone() bool         { return a.done }

// ID identifies the slot an appointment occupies.
func (a Appointment) ID() string {
	return a.date.String() + "@" + a.startTime.String()
}

// Duration returns the appointment length.
func (a Appointment) Duration() time.Duration {
	return a.endTime.Sub(a.startTime)
}

// Interval returns the [start, end) clock interval of the appointment.
func (a Appointment) Interval() TimeInterval {
	return TimeInterval{Start: a.startTime, End: a.endTime}
}

// IsOverlapping reports whether both appointments share at least one minute on the same date.
func (a Appointment) IsOverlapping(other Appointment) bool {
	return a.date.Equal(other.date) &&
		a.endTime.After(other.startTime) &&
		other.endTime.After(a.startTime)
}

// IsBefore reports whether a ends no later than other starts.
func (a Appointment) IsBefore(other Appointment) bool {
	if !a.date.Equal(other.date) {
		return a.date.Before(other.date)
	}
	return !a.endTime.After(other.startTime)
}

// IsAfter reports whether a starts no earlier than other ends.
func (a Appointment) IsAfter(other Appointment) bool {
	return other.IsBefore(a)
}

// HasSameSlot reports whether both appointments occupy exactly the same date and times.
func (a Appointment) HasSameSlot(other Appointment) bool {
	return a.date.Equal(other.date) &&
		a.startTime == other.startTime &&
		a.endTime == other.endTime
}

// Equals compares every field, including completion and patient.
func (a Appointment) Equals(other Appointment) bool {
	return a.HasSameSlot(other) &&
		a.patientID == other.patientID &&
		a.done == other.done
}

// IsUpcoming reports whether the appointment date is today or later.
func (a Appointment) IsUpcoming() bool {
	return !a.date.Before(Today())
}

// MarkAsDone returns a completed copy of the appointment.
func (a Appointment) MarkAsDone() Appointment {
	a.done = true
	return a
}

// WithPatient returns a copy attached to patientID.
func (a Appointment) WithPatient(patientID uuid.UUID) Appointment {
	a.patientID = patientID
	return a
}

// WithoutPatient returns a copy with no patient attached.
func (a Appointment) WithoutPatient() Appointment {
	a.patientID = uuid.Nil
	return a
}

func (a Appointment) String() string {
	return fmt.Sprintf("%s %s-%s", a.date, a.startTime, a.endTime)
}

// CompareAppointments orders appointments by time. Overlapping appointments compare equal.
func CompareAppointments(a, b Appointment) int {
	switch {
	case a.IsBefore(b):
		return -1
	case a.IsAfter(b):
		return 1
	default:
		return 0
	}
}
