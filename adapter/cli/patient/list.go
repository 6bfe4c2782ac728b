package patient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/clinicdesk/adapter/cli"
	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
)

func newListCmd(app *cli.App) *cobra.Command {
	var keyword string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List patients",
		Long:    `List patients in registration order, optionally matching a word of the name or a tag.`,
		Aliases: []string{"ls", "find"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				keyword = args[0]
			}

			result, err := app.ListPatientsHandler.Handle(cmd.Context(), queries.ListPatientsQuery{Keyword: keyword})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result) == 0 {
				fmt.Fprintln(out, "No patients found.")
				return nil
			}

			table := cli.NewTable(out, "ID", "Name", "Phone", "Email", "Tags", "Appointments")
			for _, p := range result {
				table.Append([]string{
					cli.ShortID(p.ID),
					p.Name,
					p.Phone,
					p.Email,
					strings.Join(p.Tags, ","),
					strconv.Itoa(p.Appointments),
				})
			}
			table.Render()
			fmt.Fprintf(out, "\n%d patients\n", len(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "name word or tag to match")
	return cmd
}
