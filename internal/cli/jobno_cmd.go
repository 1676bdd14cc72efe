package cli

import (
	"fmt"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newJobNoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "jobno",
		Short: "Allocate a job number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			number, fallback := app.JobNumbers.Next(cmd.Context())
			if fallback {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", number, formatter.StyleYellow.Render("(generated locally)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
}
