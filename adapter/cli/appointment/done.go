package appointment

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newDoneCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <date> <start>",
		Short:   "Mark an appointment as done",
		Aliases: []string{"complete"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, start, err := slotArgs(args)
			if err != nil {
				return err
			}

			result, err := app.MarkAppointmentDoneHandler.Handle(cmd.Context(), commands.MarkAppointmentDoneCommand{
				Date:  date,
				Start: start,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as done\n", describe(result.Appointment))
			return nil
		},
	}
}
