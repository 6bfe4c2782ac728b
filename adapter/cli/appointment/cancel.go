package appointment

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newCancelCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "cancel <date> <start>",
		Short:   "Cancel an appointment",
		Aliases: []string{"rm", "delete"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, start, err := slotArgs(args)
			if err != nil {
				return err
			}

			result, err := app.CancelAppointmentHandler.Handle(cmd.Context(), commands.CancelAppointmentCommand{
				Date:  date,
				Start: start,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", describe(result.Appointment))
			return nil
		},
	}
}
