package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// AppointmentDTO is a data transfer object for appointments.
type AppointmentDTO struct {
	ID          string
	Date        time.Time
	Start       string
	End         string
	StartsAt    time.Time // local time
	EndsAt      time.Time
	DurationMin int
	PatientID   uuid.UUID
	PatientName string
	Done        bool
}

// ListAppointmentsQuery contains the filters for listing appointments.
// Zero values disable a filter.
type ListAppointmentsQuery struct {
	Date         time.Time
	PatientID    uuid.UUID
	UpcomingOnly bool
	PendingOnly  bool
}

func (ListAppointmentsQuery) QueryName() string { return "list_appointments" }

// ListAppointmentsHandler handles the ListAppointmentsQuery.
type ListAppointmentsHandler struct {
	workspace *application.Workspace
}

var _ sharedApplication.QueryHandler[ListAppointmentsQuery, []AppointmentDTO] = (*ListAppointmentsHandler)(nil)

// NewListAppointmentsHandler creates a new ListAppointmentsHandler.
func NewListAppointmentsHandler(workspace *application.Workspace) *ListAppointmentsHandler {
	return &ListAppointmentsHandler{workspace: workspace}
}

// Handle executes the ListAppointmentsQuery. Results are in time order.
func (h *ListAppointmentsHandler) Handle(_ context.Context, query ListAppointmentsQuery) ([]AppointmentDTO, error) {
	var date scheduling.Date
	if !query.Date.IsZero() {
		date = scheduling.RehydrateDate(query.Date)
	}

	matched := h.workspace.Appointments().Filter(func(a scheduling.Appointment) bool {
		if !date.IsZero() && !a.Date().Equal(date) {
			return false
		}
		if query.PatientID != uuid.Nil && a.PatientID() != query.PatientID {
			return false
		}
		if query.UpcomingOnly && !a.IsUpcoming() {
			return false
		}
		if query.PendingOnly && a.IsDone() {
			return false
		}
		return true
	})

	names := h.patientNames()
	return lo.Map(matched, func(a scheduling.Appointment, _ int) AppointmentDTO {
		return AppointmentDTO{
			ID:          a.ID(),
			Date:        a.Date().Time(),
			Start:       a.StartTime().String(),
			End:         a.EndTime().String(),
			StartsAt:    a.Date().At(a.StartTime(), time.Local),
			EndsAt:      a.Date().At(a.EndTime(), time.Local),
			DurationMin: int(a.Duration().Minutes()),
			PatientID:   a.PatientID(),
			PatientName: names[a.PatientID()],
			Done:        a.IsDone(),
		}
	}), nil
}

func (h *ListAppointmentsHandler) patientNames() map[uuid.UUID]string {
	result := make(map[uuid.UUID]string, h.workspace.Patients().Len())
	for _, p := range h.workspace.Patients().Patients() {
		result[p.ID()] = p.Name()
	}
	return result
}
