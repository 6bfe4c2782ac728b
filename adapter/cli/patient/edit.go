package patient

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newEditCmd(app *cli.App) *cobra.Command {
	var (
		name         string
		phone        string
		email        string
		address      string
		tags         []string
		clearTags    bool
		clearEmail   bool
		clearAddress bool
	)

	cmd := &cobra.Command{
		Use:   "edit <patient>",
		Short: "Edit a patient's details",
		Long: `Edit a patient. The patient is given by ID, ID prefix or exact name.
Only the flags given are changed; --tag replaces every tag.
--clear-email and --clear-address remove the optional fields.

Examples:
  clinicdesk patient edit "Alex Yeoh" --phone 91234567
  clinicdesk patient edit 3f2a --tag wheelchair --tag diabetic
  clinicdesk patient edit 3f2a --clear-tags
  clinicdesk patient edit 3f2a --clear-email --clear-address`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := cli.ResolvePatient(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			edit := commands.EditPatientCommand{
				PatientID:    target.ID,
				Name:         name,
				Phone:        phone,
				Email:        email,
				Address:      address,
				ClearEmail:   clearEmail,
				ClearAddress: clearAddress,
			}
			switch {
			case clearTags:
				edit.Tags = []string{}
			case cmd.Flags().Changed("tag"):
				edit.Tags = tags
			}

			result, err := app.EditPatientHandler.Handle(cmd.Context(), edit)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated patient %s (%s)\n", result.Patient.Name(), cli.ShortID(result.Patient.ID()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&address, "address", "", "new postal address")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "replacement tag (repeatable)")
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "remove all tags")
	cmd.Flags().BoolVar(&clearEmail, "clear-email", false, "remove the email address")
	cmd.Flags().BoolVar(&clearAddress, "clear-address", false, "remove the postal address")
	cmd.MarkFlagsMutuallyExclusive("tag", "clear-tags")
	cmd.MarkFlagsMutuallyExclusive("email", "clear-email")
	cmd.MarkFlagsMutuallyExclusive("address", "clear-address")
	return cmd
}
