// Package domain holds rules that span the patient and appointment collections.
package domain

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
)

// ConsistencyChecker verifies that appointments only refer to known patients.
// An appointment without a patient reference is always consistent.
type ConsistencyChecker struct{}

// NewConsistencyChecker creates a consistency checker.
func NewConsistencyChecker() ConsistencyChecker {
	return ConsistencyChecker{}
}

// IsValid reports whether every patient reference resolves.
func (c ConsistencyChecker) IsValid(patientList []patients.Patient, appointments []scheduling.Appointment) bool {
	known := knownPatients(patientList)
	return lo.EveryBy(appointments, func(a scheduling.Appointment) bool {
		return resolves(known, a)
	})
}

// Reconcile returns the appointments whose patient reference resolves, in their original order.
func (c ConsistencyChecker) Reconcile(patientList []patients.Patient, appointments []scheduling.Appointment) []scheduling.Appointment {
	known := knownPatients(patientList)
	return lo.Filter(appointments, func(a scheduling.Appointment, _ int) bool {
		return resolves(known, a)
	})
}

// Orphans returns the appointments Reconcile would drop.
func (c ConsistencyChecker) Orphans(patientList []patients.Patient, appointments []scheduling.Appointment) []scheduling.Appointment {
	known := knownPatients(patientList)
	return lo.Reject(appointments, func(a scheduling.Appointment, _ int) bool {
		return resolves(known, a)
	})
}

func knownPatients(patientList []patients.Patient) map[uuid.UUID]struct{} {
	return lo.SliceToMap(patientList, func(p patients.Patient) (uuid.UUID, struct{}) {
		return p.ID(), struct{}{}
	})
}

func resolves(known map[uuid.UUID]struct{}, a scheduling.Appointment) bool {
	if !a.HasPatient() {
		return true
	}
	_, ok := known[a.PatientID()]
	return ok
}
