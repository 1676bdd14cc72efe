package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect, retry or discard submissions that failed",
	}
	cmd.AddCommand(
		newDraftListCmd(app),
		newDraftShowCmd(app),
		newDraftRetryCmd(app),
		newDraftDiscardCmd(app),
	)
	return cmd
}

func newDraftListCmd(app *App) *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored drafts, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := app.Drafts.List(cmd.Context(), entity)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(drafts) == 0 {
				fmt.Fprintln(out, formatter.Dim("No drafts."))
				return nil
			}
			now := app.now()
			rows := make([][]string, len(drafts))
			for i, d := range drafts {
				rows[i] = []string{
					formatter.ShortID(d.ID), d.Entity, d.Method, strconv.Itoa(d.Attempts),
					formatter.Age(d.UpdatedAt, now), formatter.Truncate(d.LastError, 48),
				}
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"ID", "Entity", "Method", "Attempts", "Updated", "Last error"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&entity, "entity", "", "Only show drafts of this entity (job or bl)")
	return cmd
}

func newDraftShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a draft and its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Drafts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var payload bytes.Buffer
			if err := json.Indent(&payload, d.Payload, "", "  "); err != nil {
				payload.Reset()
				payload.Write(d.Payload)
			}
			meta := formatter.KeyValues([][2]string{
				{"ID", d.ID},
				{"Entity", d.Entity},
				{"Request", d.Method + " " + d.Path},
				{"Attempts", strconv.Itoa(d.Attempts)},
				{"Created", d.CreatedAt.Format("2006-01-02 15:04")},
				{"Last error", d.LastError},
			})
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Draft "+formatter.ShortID(d.ID), meta+"\n"+payload.String()))
			return nil
		},
	}
}

func newDraftRetryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Send a draft again; it is removed once the backend accepts it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Drafts.Retry(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Draft removed."))
			return nil
		},
	}
}

func newDraftDiscardCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "discard <id>",
		Short: "Delete a draft without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := app.Drafts.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := app.Prompter.Confirm(fmt.Sprintf("Discard %s draft %s?", d.Entity, formatter.ShortID(d.ID)))
				if err != nil || !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Kept."))
					return nil
				}
			}
			if err := app.Drafts.Discard(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Discarded draft %s\n", formatter.ShortID(d.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
