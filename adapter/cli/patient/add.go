package patient

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
)

func newAddCmd(app *cli.App) *cobra.Command {
	var (
		phone   string
		email   string
		address string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new patient",
		Long: `Register a new patient. Two patients with the same name (ignoring
case and extra spaces) are treated as the same person.

Examples:
  clinicdesk patient add "Alex Yeoh" --phone 87438807
  clinicdesk patient add "Bernice Yu" --phone 99272758 --email berniceyu@example.com --tag diabetic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.AddPatientHandler.Handle(cmd.Context(), commands.AddPatientCommand{
				Details: patients.PatientDetails{
					Name:    args[0],
					Phone:   phone,
					Email:   email,
					Address: address,
					Tags:    tags,
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added patient %s (%s)\n", result.Patient.Name(), cli.ShortID(result.PatientID))
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number (digits only)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
