package appointment

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
)

func newFreeCmd(app *cli.App) *cobra.Command {
	var minDuration time.Duration

	cmd := &cobra.Command{
		Use:   "free [date]",
		Short: "Find free time slots",
		Long: `Find the free time slots of a day within the clinic's operating hours.

Examples:
  clinicdesk appointment free
  clinicdesk appointment free tomorrow --min 30m`,
		Aliases: []string{"slots", "available"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := ""
			if len(args) == 1 {
				day = args[0]
			}
			date, err := cli.ParseDate(day, time.Now())
			if err != nil {
				return err
			}

			result, err := app.FindFreeSlotsHandler.Handle(cmd.Context(), queries.FindFreeSlotsQuery{
				Date:        date,
				MinDuration: minDuration,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Free slots for %s\n", result.Date.Format("Monday, January 2, 2006"))
			fmt.Fprintf(out, "Operating hours: %s\n\n", app.OperatingHours)

			if len(result.Slots) == 0 {
				fmt.Fprintln(out, "No free slots found.")
				return nil
			}

			table := cli.NewTable(out, "From", "To", "Length")
			for _, slot := range result.Slots {
				table.Append([]string{
					slot.Start,
					slot.End,
					cli.FormatDuration(time.Duration(slot.DurationMin) * time.Minute),
				})
			}
			table.Render()
			fmt.Fprintf(out, "\nTotal: %d slots, %s free\n", len(result.Slots), cli.FormatDuration(result.TotalFree))
			return nil
		},
	}

	cmd.Flags().DurationVarP(&minDuration, "min", "m", 0, "minimum slot length")
	return cmd
}
