package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
)

// committer records a finished change as one undoable step and persists it.
type committer struct {
	workspace *application.Workspace
	store     application.Store
}

// commit commits both histories and saves the result.
func (c committer) commit(ctx context.Context) error {
	c.workspace.Commit()
	return c.save(ctx)
}

func (c committer) save(ctx context.Context) error {
	if err := c.store.Save(ctx, c.workspace.Snapshot()); err != nil {
		return fmt.Errorf("failed to save clinic data: %w", err)
	}
	return nil
}

// fail drops any partial change before returning err.
func (c committer) fail(err error) error {
	c.workspace.Discard()
	return err
}

// locate finds the stored appointment on date starting at start ("HH:MM").
// Past dates are accepted so old appointments can still be addressed.
func locate(book *scheduling.AppointmentBook, date time.Time, start string) (scheduling.Appointment, error) {
	startTime, err := scheduling.ParseTime(start)
	if err != nil {
		return scheduling.Appointment{}, err
	}
	return book.Find(scheduling.RehydrateDate(date), startTime)
}
