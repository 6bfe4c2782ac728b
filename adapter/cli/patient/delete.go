package patient

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newDeleteCmd(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <patient>",
		Short:   "Remove a patient and their appointments",
		Aliases: []string{"rm", "remove"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := cli.ResolvePatient(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			result, err := app.DeletePatientHandler.Handle(cmd.Context(), commands.DeletePatientCommand{
				PatientID: target.ID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted patient %s", result.Patient.Name())
			if result.RemovedAppointments > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " and %d appointments", result.RemovedAppointments)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
