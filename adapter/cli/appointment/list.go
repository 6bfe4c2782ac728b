package appointment

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
)

func newListCmd(app *cli.App) *cobra.Command {
	var (
		date       string
		patientRef string
		upcoming   bool
		pending    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments in time order",
		Long: `List appointments in time order.

Examples:
  clinicdesk appointment list
  clinicdesk appointment list --date tomorrow
  clinicdesk appointment list --patient "Alex Yeoh" --pending`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := queries.ListAppointmentsQuery{UpcomingOnly: upcoming, PendingOnly: pending}
			if date != "" {
				d, err := cli.ParseDate(date, time.Now())
				if err != nil {
					return err
				}
				query.Date = d
			}
			if patientRef != "" {
				p, err := cli.ResolvePatient(cmd.Context(), app, patientRef)
				if err != nil {
					return err
				}
				query.PatientID = p.ID
			}

			result, err := app.ListAppointmentsHandler.Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result) == 0 {
				fmt.Fprintln(out, "No appointments found.")
				return nil
			}

			table := cli.NewTable(out, "Date", "Time", "Length", "Patient", "Status")
			for _, a := range result {
				patient := a.PatientName
				if patient == "" {
					patient = "-"
				}
				status := "pending"
				if a.Done {
					status = "done"
				}
				table.Append([]string{
					cli.FormatDate(a.Date),
					a.Start + "-" + a.End,
					cli.FormatDuration(time.Duration(a.DurationMin) * time.Minute),
					patient,
					status,
				})
			}
			table.Render()
			fmt.Fprintf(out, "\n%d appointments\n", len(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "only this day")
	cmd.Flags().StringVarP(&patientRef, "patient", "p", "", "only this patient (ID, ID prefix or name)")
	cmd.Flags().BoolVarP(&upcoming, "upcoming", "u", false, "only today and later")
	cmd.Flags().BoolVar(&pending, "pending", false, "only appointments not yet done")
	return cmd
}
