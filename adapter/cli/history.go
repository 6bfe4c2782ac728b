package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/commands"
)

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		Long: `Undo the most recent change to patients or appointments.

History lives for the current process, so undo is most useful inside
"clinicdesk shell".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.UndoHandler.Handle(cmd.Context(), commands.UndoCommand{})
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), "Undone.", result)
			return nil
		},
	}
}

func newRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.RedoHandler.Handle(cmd.Context(), commands.RedoCommand{})
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), "Redone.", result)
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all patients and appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to clear without --force")
			}
			result, err := app.ClearAllHandler.Handle(cmd.Context(), commands.ClearAllCommand{})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d patients and %d appointments.\n",
				result.RemovedPatients, result.RemovedAppointments)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm clearing all data")
	return cmd
}

func printHistory(w io.Writer, verb string, result *commands.HistoryResult) {
	fmt.Fprintf(w, "%s %d patients, %d appointments.\n", verb, result.Patients, result.Appointments)
}
