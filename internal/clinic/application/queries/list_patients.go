package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// PatientDTO is a data transfer object for patients.
type PatientDTO struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Email        string
	Address      string
	Tags         []string
	Appointments int
	CreatedAt    time.Time
}

// ListPatientsQuery contains the parameters for listing patients.
type ListPatientsQuery struct {
	Keyword string // matches a whole word of the name or a tag
}

func (ListPatientsQuery) QueryName() string { return "list_patients" }

// ListPatientsHandler handles the ListPatientsQuery.
type ListPatientsHandler struct {
	workspace *application.Workspace
}

var _ sharedApplication.QueryHandler[ListPatientsQuery, []PatientDTO] = (*ListPatientsHandler)(nil)

// NewListPatientsHandler creates a new ListPatientsHandler.
func NewListPatientsHandler(workspace *application.Workspace) *ListPatientsHandler {
	return &ListPatientsHandler{workspace: workspace}
}

// Handle executes the ListPatientsQuery.
func (h *ListPatientsHandler) Handle(_ context.Context, query ListPatientsQuery) ([]PatientDTO, error) {
	book := h.workspace.Patients()
	matched := book.Patients()
	if query.Keyword != "" {
		matched = book.Filter(func(p patients.Patient) bool {
			return p.MatchesKeyword(query.Keyword)
		})
	}

	appointments := h.workspace.Appointments()
	return lo.Map(matched, func(p patients.Patient, _ int) PatientDTO {
		return PatientDTO{
			ID:           p.ID(),
			Name:         p.Name(),
			Phone:        p.Phone(),
			Email:        p.Email(),
			Address:      p.Address(),
			Tags:         p.Tags(),
			Appointments: len(appointments.ForPatient(p.ID())),
			CreatedAt:    p.CreatedAt(),
		}
	}), nil
}
