package appointment

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newEditCmd(app *cli.App) *cobra.Command {
	var (
		newDate    string
		newStart   string
		duration   time.Duration
		patientRef string
		noPatient  bool
	)

	cmd := &cobra.Command{
		Use:   "edit <date> <start>",
		Short: "Move or change an appointment",
		Long: `Change an appointment's date, start, length or patient. The change is
rejected, and the appointment left as it was, if it would overlap another one.

Examples:
  clinicdesk appointment edit tomorrow 09:00 --start 10:00
  clinicdesk appointment edit 2030-01-15 14:30 --date 2030-01-16 --duration 45m
  clinicdesk appointment edit tomorrow 09:00 --no-patient`,
		Aliases: []string{"move", "reschedule"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, start, err := slotArgs(args)
			if err != nil {
				return err
			}

			edit := commands.EditAppointmentCommand{
				Date:          date,
				Start:         start,
				NewStart:      newStart,
				NewDuration:   duration,
				DetachPatient: noPatient,
			}
			if newDate != "" {
				if edit.NewDate, err = cli.ParseDate(newDate, time.Now()); err != nil {
					return err
				}
			}
			if patientRef != "" {
				p, err := cli.ResolvePatient(cmd.Context(), app, patientRef)
				if err != nil {
					return err
				}
				edit.NewPatientID = p.ID
			}

			result, err := app.EditAppointmentHandler.Handle(cmd.Context(), edit)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s -> %s\n", describe(result.Previous), describe(result.Appointment))
			return nil
		},
	}

	cmd.Flags().StringVar(&newDate, "date", "", "new date")
	cmd.Flags().StringVar(&newStart, "start", "", "new start time (HH:MM)")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "new length")
	cmd.Flags().StringVarP(&patientRef, "patient", "p", "", "assign to patient (ID, ID prefix or name)")
	cmd.Flags().BoolVar(&noPatient, "no-patient", false, "detach the patient")
	cmd.MarkFlagsMutuallyExclusive("patient", "no-patient")
	return cmd
}
