package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/clinicdesk/internal/shared/application"
	"github.com/samber/lo"
)

// TimeSlotDTO is a data transfer object for free time slots.
type TimeSlotDTO struct {
	Start       string
	End         string
	DurationMin int
}

// FindFreeSlotsQuery contains the parameters for finding free slots.
type FindFreeSlotsQuery struct {
	Date        time.Time
	MinDuration time.Duration
}

func (FindFreeSlotsQuery) QueryName() string { return "find_free_slots" }

// FreeSlotsDTO lists the free slots of one day.
type FreeSlotsDTO struct {
	Date      time.Time
	Slots     []TimeSlotDTO
	TotalFree time.Duration
}

// FindFreeSlotsHandler handles the FindFreeSlotsQuery.
type FindFreeSlotsHandler struct {
	workspace *application.Workspace
	operating []scheduling.TimeInterval
}

var _ sharedApplication.QueryHandler[FindFreeSlotsQuery, *FreeSlotsDTO] = (*FindFreeSlotsHandler)(nil)

// NewFindFreeSlotsHandler creates a new FindFreeSlotsHandler searching within
// the given operating intervals, or the full operating day when none are given.
func NewFindFreeSlotsHandler(workspace *application.Workspace, operating ...scheduling.TimeInterval) *FindFreeSlotsHandler {
	if len(operating) == 0 {
		operating = []scheduling.TimeInterval{scheduling.OperatingHours()}
	}
	return &FindFreeSlotsHandler{workspace: workspace, operating: operating}
}

// Handle executes the FindFreeSlotsQuery.
func (h *FindFreeSlotsHandler) Handle(_ context.Context, query FindFreeSlotsQuery) (*FreeSlotsDTO, error) {
	date := scheduling.RehydrateDate(query.Date)

	slots := h.workspace.Appointments().FreeSlots(date, h.operating...)
	if query.MinDuration > 0 {
		slots = scheduling.FilterByMinDuration(slots, query.MinDuration)
	}

	return &FreeSlotsDTO{
		Date: date.Time(),
		Slots: lo.Map(slots, func(slot scheduling.TimeInterval, _ int) TimeSlotDTO {
			return TimeSlotDTO{
				Start:       slot.Start.String(),
				End:         slot.End.String(),
				DurationMin: int(slot.Duration().Minutes()),
			}
		}),
		TotalFree: scheduling.TotalDuration(slots),
	}, nil
}
