package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newScheduleCmd(app *cli.App) *cobra.Command {
	var (
		duration   time.Duration
		patientRef string
	)

	cmd := &cobra.Command{
		Use:   "schedule <date> <start>",
		Short: "Book an appointment",
		Long: `Book an appointment. Dates are YYYY-MM-DD, today, tomorrow or +N days;
start times are HH:MM between 08:00 and 22:00.

Examples:
  clinicdesk appointment schedule tomorrow 09:00 --patient "Alex Yeoh"
  clinicdesk appointment schedule 2030-01-15 14:30 --duration 30m --patient 3f2a
  clinicdesk appointment schedule +2 10:00`,
		Aliases: []string{"add", "book"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, start, err := slotArgs(args)
			if err != nil {
				return err
			}

			patientID := uuid.Nil
			patientName := ""
			if patientRef != "" {
				p, err := cli.ResolvePatient(cmd.Context(), app, patientRef)
				if err != nil {
					return err
				}
				patientID, patientName = p.ID, p.Name
			}

			result, err := app.ScheduleAppointmentHandler.Handle(cmd.Context(), commands.ScheduleAppointmentCommand{
				Date:      date,
				Start:     start,
				Duration:  duration,
				PatientID: patientID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s", describe(result.Appointment))
			if patientName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " for %s", patientName)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "appointment length (default from CLINIC_DEFAULT_DURATION)")
	cmd.Flags().StringVarP(&patientRef, "patient", "p", "", "patient ID, ID prefix or name")
	return cmd
}
