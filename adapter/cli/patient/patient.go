// Package patient provides the patient command group.
package patient

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
)

// NewCmd creates the patient command group.
func NewCmd(app *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patient",
		Short:   "Manage patients",
		Long:    `Register, edit, find and remove patients.`,
		Aliases: []string{"patients", "p"},
	}

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newListCmd(app))
	return cmd
}
