package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Check storage and data consistency",
		Aliases: []string{"health"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Health == nil {
				return fmt.Errorf("health checks are not configured")
			}

			results := app.Health.Check(cmd.Context())
			table := NewTable(cmd.OutOrStdout(), "Check", "Status", "Detail")
			for _, r := range results {
				table.Append([]string{r.Name, string(r.Status), r.Message})
			}
			table.Render()

			overall := observability.OverallStatus(results)
			fmt.Fprintf(cmd.OutOrStdout(), "\nOverall: %s\n", overall)
			if overall == observability.HealthStatusUnhealthy {
				return fmt.Errorf("clinicdesk is unhealthy")
			}
			return nil
		},
	}
}
