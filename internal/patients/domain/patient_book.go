package domain

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrDuplicatePatient = errors.New("patient already exists")
)

// PatientBook holds patients of which no two are the same person.
// Patients are kept in insertion order.
type PatientBook struct {
	patients []Patient
}

// NewPatientBook creates an empty patient book.
func NewPatientBook() *PatientBook {
	return &PatientBook{patients: make([]Patient, 0)}
}

// Patients returns the patients in insertion order. The slice is a copy.
func (b *PatientBook) Patients() []Patient {
	return slices.Clone(b.patients)
}

// Len returns the number of patients.
func (b *PatientBook) Len() int {
	return len(b.patients)
}

// Contains reports whether a patient describing the same person is present.
func (b *PatientBook) Contains(p Patient) bool {
	return lo.SomeBy(b.patients, p.IsSamePatient)
}

// FindByID returns the patient with the given ID.
func (b *PatientBook) FindByID(id uuid.UUID) (Patient, error) {
	p, ok := lo.Find(b.patients, func(p Patient) bool {
		return p.ID() == id
	})
	if !ok {
		return Patient{}, ErrPatientNotFound
	}
	return p, nil
}

// Add stores p, failing if the same person is already present.
func (b *PatientBook) Add(p Patient) error {
	if b.Contains(p) {
		return ErrDuplicatePatient
	}
	b.patients = append(slices.Clone(b.patients), p)
	return nil
}

// Remove deletes the patient equal to target.
func (b *PatientBook) Remove(target Patient) error {
	i := b.indexOf(target)
	if i < 0 {
		return ErrPatientNotFound
	}
	b.patients = slices.Delete(slices.Clone(b.patients), i, i+1)
	return nil
}

// Replace swaps target for edited in place. edited must not describe
// the same person as any other patient.
func (b *PatientBook) Replace(target, edited Patient) error {
	i := b.indexOf(target)
	if i < 0 {
		return ErrPatientNotFound
	}
	for j, existing := range b.patients {
		if j != i && existing.IsSamePatient(edited) {
			return ErrDuplicatePatient
		}
	}
	next := slices.Clone(b.patients)
	next[i] = edited
	b.patients = next
	return nil
}

// Filter returns the patients matching predicate.
func (b *PatientBook) Filter(predicate func(Patient) bool) []Patient {
	return lo.Filter(b.patients, func(p Patient, _ int) bool {
		return predicate(p)
	})
}

// IDs returns the set of patient IDs.
func (b *PatientBook) IDs() map[uuid.UUID]struct{} {
	return lo.SliceToMap(b.patients, func(p Patient) (uuid.UUID, struct{}) {
		return p.ID(), struct{}{}
	})
}

// Snapshot returns a copy of the current contents.
func (b *PatientBook) Snapshot() []Patient {
	return b.Patients()
}

// Restore replaces the contents with a snapshot previously taken from this book.
func (b *PatientBook) Restore(snapshot []Patient) {
	b.patients = slices.Clone(snapshot)
}

// ResetData replaces the contents wholesale. A snapshot containing the same
// person twice is rejected and the book is left unchanged.
func (b *PatientBook) ResetData(patients []Patient) error {
	next := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if lo.SomeBy(next, p.IsSamePatient) {
			return ErrDuplicatePatient
		}
		next = append(next, p)
	}
	b.patients = next
	return nil
}

func (b *PatientBook) indexOf(target Patient) int {
	return slices.IndexFunc(b.patients, target.Equals)
}
