// Package appointment provides the appointment command group.
package appointment

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	scheduling "github.com/felixgeelhaar/clinicdesk/internal/scheduling/domain"
)

// NewCmd creates the appointment command group.
func NewCmd(app *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Manage appointments",
		Long: `Book, change and review appointments. An appointment is identified by
its date and start time, since no two appointments may overlap.`,
		Aliases: []string{"appointments", "appt", "a"},
	}

	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newCancelCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newFreeCmd(app))
	return cmd
}

// slotArgs reads the <date> <start> pair every single-appointment command takes.
func slotArgs(args []string) (time.Time, string, error) {
	date, err := cli.ParseDate(args[0], time.Now())
	if err != nil {
		return time.Time{}, "", err
	}
	if _, err := scheduling.ParseTime(args[1]); err != nil {
		return time.Time{}, "", fmt.Errorf("start %q: %w", args[1], err)
	}
	return date, args[1], nil
}

func describe(a scheduling.Appointment) string {
	return fmt.Sprintf("%s %s-%s", a.Date(), a.StartTime(), a.EndTime())
}
