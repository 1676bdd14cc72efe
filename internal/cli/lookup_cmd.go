package cli

import (
	"fmt"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/alexanderramin/freightdesk/internal/refdata"
	"github.com/spf13/cobra"
)

func newLookupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [kind]",
		Short: "Fetch one reference list, or list the available kinds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			loader := app.newLoader()
			if len(args) == 0 || args[0] == "kinds" {
				rows := make([][]string, 0, len(loader.Kinds()))
				for _, k := range loader.Kinds() {
					lk, _ := loader.Lookup(k)
					source := lk.Query.Entity
					if lk.TypeName != "" {
						source = "type " + lk.TypeName
					}
					rows = append(rows, []string{string(k), lk.Title, source})
				}
				fmt.Fprint(out, formatter.RenderTable([]string{"Kind", "Title", "Source"}, rows))
				return nil
			}

			kind := refdata.Kind(args[0])
			if err := loader.LoadKinds(cmd.Context(), kind); err != nil {
				return err
			}
			lk, _ := loader.Lookup(kind)
			st := loader.State(kind)

			fmt.Fprintln(out, formatter.Header(lk.Title))
			rows := make([][]string, len(st.Options))
			for i, o := range st.Options {
				rows[i] = []string{o.Value, o.Label}
			}
			if len(rows) > 0 {
				fmt.Fprint(out, formatter.RenderTable([]string{"Value", "Label"}, rows))
			}
			fmt.Fprintln(out, formatter.ListStatus(len(st.Options), st.Skipped, st.Err != nil))
			if st.Err != nil {
				app.Log.WithError(st.Err).WithField("lookup", kind).Debug("lookup served from fallback")
			}
			return nil
		},
	}
}
