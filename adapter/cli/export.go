package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/infrastructure/ical"
	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/security"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		format  string
		output  string
		days    int
		withAll bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export appointments to a calendar file",
		Long: `Export appointments in ICS (iCalendar) format for import into
Google Calendar, Outlook, Apple Calendar, and other calendar apps.

Examples:
  clinicdesk export                      # Upcoming appointments to stdout
  clinicdesk export -o clinic.ics        # Export to file
  clinicdesk export --days 7             # Export the next 7 days
  clinicdesk export --all                # Include past appointments`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "ics" && format != "ical" {
				return fmt.Errorf("unsupported format: %s (supported: ics)", format)
			}

			appointments, err := app.ListAppointmentsHandler.Handle(cmd.Context(), queries.ListAppointmentsQuery{
				UpcomingOnly: !withAll,
			})
			if err != nil {
				return err
			}
			if days > 0 {
				now := time.Now()
				until := time.Date(now.Year(), now.Month(), now.Day()+days, 0, 0, 0, 0, time.Local)
				appointments = lo.Filter(appointments, func(a queries.AppointmentDTO, _ int) bool {
					return a.StartsAt.Before(until)
				})
			}

			if len(appointments) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No appointments to export.")
				return nil
			}

			var buf bytes.Buffer
			if err := ical.Encode(&buf, appointments, time.Now()); err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			path, err := security.SafeWriteFile(output, buf.Bytes())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d appointments to %s\n", len(appointments), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "ics", "export format (ics)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&days, "days", 0, "only export the next N days (0 = no limit)")
	cmd.Flags().BoolVar(&withAll, "all", false, "include past appointments")
	return cmd
}
