package domain

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentOverlap  = errors.New("appointment overlaps an existing appointment")
)

// AppointmentBook holds appointments of which no two overlap.
// Appointments are kept in CompareAppointments order.
type AppointmentBook struct {
	appointments []Appointment
}

// NewAppointmentBook creates an empty appointment book.
func NewAppointmentBook() *AppointmentBook {
	return &AppointmentBook{appointments: make([]Appointment, 0)}
}

// Appointments returns the appointments in time order. The slice is a copy.
func (b *AppointmentBook) Appointments() []Appointment {
	return slices.Clone(b.appointments)
}

// Len returns the number of appointments.
func (b *AppointmentBook) Len() int {
	return len(b.appointments)
}

// Contains reports whether an appointment equal to target is present.
func (b *AppointmentBook) Contains(target Appointment) bool {
	return b.indexOf(target) >= 0
}

// Find returns the appointment on date starting at start.
func (b *AppointmentBook) Find(date Date, start Time) (Appointment, error) {
	a, ok := lo.Find(b.appointments, func(a Appointment) bool {
		return a.date.Equal(date) && a.startTime == start
	})
	if !ok {
		return Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

// HasOverlaps reports whether any appointment overlaps a, partially or exactly.
func (b *AppointmentBook) HasOverlaps(a Appointment) bool {
	return lo.SomeBy(b.appointments, a.IsOverlapping)
}

// HasExactOverlap reports whether an appointment occupies exactly the slot of a.
func (b *AppointmentBook) HasExactOverlap(a Appointment) bool {
	return lo.SomeBy(b.appointments, a.HasSameSlot)
}

// Add stores a, failing if it overlaps an existing appointment.
func (b *AppointmentBook) Add(a Appointment) error {
	if b.HasOverlaps(a) {
		return ErrAppointmentOverlap
	}
	b.appointments = insertSorted(b.appointments, a)
	return nil
}

// Remove deletes the appointment equal to target.
func (b *AppointmentBook) Remove(target Appointment) error {
	i := b.indexOf(target)
	if i < 0 {
		return ErrAppointmentNotFound
	}
	b.appointments = slices.Delete(slices.Clone(b.appointments), i, i+1)
	return nil
}

// Replace swaps target for edited. The overlap check runs against every
// appointment except target before anything changes.
func (b *AppointmentBook) Replace(target, edited Appointment) error {
	i := b.indexOf(target)
	if i < 0 {
		return ErrAppointmentNotFound
	}
	for j, existing := range b.appointments {
		if j != i && existing.IsOverlapping(edited) {
			return ErrAppointmentOverlap
		}
	}
	remaining := slices.Delete(slices.Clone(b.appointments), i, i+1)
	b.appointments = insertSorted(remaining, edited)
	return nil
}

// Filter returns the appointments matching predicate, in time order.
func (b *AppointmentBook) Filter(predicate func(Appointment) bool) []Appointment {
	return lo.Filter(b.appointments, func(a Appointment, _ int) bool {
		return predicate(a)
	})
}

// OnDate returns the appointments booked on date.
func (b *AppointmentBook) OnDate(date Date) []Appointment {
	return b.Filter(func(a Appointment) bool {
		return a.Date().Equal(date)
	})
}

// ForPatient returns the appointments referencing patientID.
func (b *AppointmentBook) ForPatient(patientID uuid.UUID) []Appointment {
	return b.Filter(func(a Appointment) bool {
		return a.PatientID() == patientID
	})
}

// FreeSlots computes the free intervals of date within the given operating
// intervals. With no operating intervals the full operating day is used.
func (b *AppointmentBook) FreeSlots(date Date, operating ...TimeInterval) []TimeInterval {
	if len(operating) == 0 {
		operating = []TimeInterval{OperatingHours()}
	}
	booked := lo.Map(b.OnDate(date), func(a Appointment, _ int) TimeInterval {
		return a.Interval()
	})
	return FindFreeSlots(operating, booked)
}

// Snapshot returns a copy of the current contents.
func (b *AppointmentBook) Snapshot() []Appointment {
	return b.Appointments()
}

// Restore replaces the contents with a snapshot previously taken from this book.
func (b *AppointmentBook) Restore(snapshot []Appointment) {
	b.appointments = slices.Clone(snapshot)
}

// ResetData replaces the contents wholesale. A snapshot containing
// overlapping appointments is rejected and the book is left unchanged.
func (b *AppointmentBook) ResetData(appointments []Appointment) error {
	next := make([]Appointment, 0, len(appointments))
	for _, a := range appointments {
		if lo.SomeBy(next, a.IsOverlapping) {
			return ErrAppointmentOverlap
		}
		next = insertSorted(next, a)
	}
	b.appointments = next
	return nil
}

func (b *AppointmentBook) indexOf(target Appointment) int {
	return slices.IndexFunc(b.appointments, target.Equals)
}

// insertSorted returns a new slice with a placed after every appointment ordered before it.
func insertSorted(appointments []Appointment, a Appointment) []Appointment {
	i, _ := slices.BinarySearchFunc(appointments, a, CompareAppointments)
	return slices.Insert(slices.Clone(appointments), i, a)
}
