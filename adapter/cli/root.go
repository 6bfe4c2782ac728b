package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/pkg/observability"
)

// CommandBuilder creates a command bound to app.
type CommandBuilder func(app *App) *cobra.Command

var (
	buildersMu sync.Mutex
	builders   []CommandBuilder
)

// AddCommand registers a command group. Every root command built
// afterwards includes it.
func AddCommand(builder CommandBuilder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	builders = append(builders, builder)
}

type commandContextKey struct{}

// NewRootCmd builds a fresh command tree bound to app. A new tree is built
// for every shell line so flag values never leak between invocations.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "clinicdesk",
		Short: "clinicdesk - clinic front desk",
		Long: `clinicdesk keeps track of patients and their appointments.

Appointments never overlap, free slots are computed for any day, and every
change can be undone within a shell session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if needsWorkspace(cmd) {
				if err := app.Open(cmd.Context()); err != nil {
					return err
				}
			}
			ctx := observability.WithCorrelationID(cmd.Context(), "")
			ctx = observability.WithOperation(ctx, cmd.CommandPath())
			ctx = context.WithValue(ctx, commandContextKey{}, time.Now())
			cmd.SetContext(ctx)
			app.logger().DebugContext(ctx, "command start")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			startedAt, ok := cmd.Context().Value(commandContextKey{}).(time.Time)
			if !ok {
				return
			}
			app.logger().DebugContext(cmd.Context(), "command end",
				observability.DurationKey, time.Since(startedAt).Milliseconds(),
			)
		},
	}

	root.AddCommand(
		newUndoCmd(app),
		newRedoCmd(app),
		newClearCmd(app),
		newExportCmd(app),
		newStatusCmd(app),
		newShellCmd(app),
		newVersionCmd(),
	)

	buildersMu.Lock()
	for _, build := range builders {
		root.AddCommand(build(app))
	}
	buildersMu.Unlock()

	return root
}

// noWorkspaceAnnotation marks commands that run without opening the database.
const noWorkspaceAnnotation = "clinicdesk/no-workspace"

func needsWorkspace(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[noWorkspaceAnnotation]; ok {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// Execute runs the command line against app.
func Execute(ctx context.Context, app *App) error {
	err := NewRootCmd(app).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
