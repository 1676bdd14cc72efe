package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"github.com/spf13/cobra"
)

// listColumns are the master fields shown by "<entity> list".
var listColumns = map[string][]string{
	"job": {"jobId", "jobNumber", "jobDate", "operationType", "shippingMode", "status"},
	"bl":  {"blId", "blNumber", "blDate", "blType", "jobId"},
}

func newEntityCmd(app *App, e *forms.Entity, use string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Create, edit and list " + e.Title + " records",
	}
	cmd.AddCommand(
		newEntityNewCmd(app, e),
		newEntityEditCmd(app, e),
		newEntityListCmd(app, e),
	)
	return cmd
}

func newEntityNewCmd(app *App, e *forms.Entity) *cobra.Command {
	var file string
	var sets overrides

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Enter a new " + e.Title,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec := forms.NewRecord(nil)
			if file != "" {
				var err error
				if rec, err = readRecordFile(file); err != nil {
					return err
				}
			}
			ed := forms.NewEditor(e, forms.ModeAdd, rec, app.seed(ctx, e, rec.Values))
			return app.edit(ctx, cmd.OutOrStdout(), ed, sets, file != "")
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read values (with child arrays) from a JSON file and submit without prompting")
	cmd.Flags().Var(&sets, "set", "Set a field before editing, e.g. --set shippingMode=AIR (repeatable)")
	return cmd
}

func newEntityEditCmd(app *App, e *forms.Entity) *cobra.Command {
	var sets overrides
	var headless bool

	cmd := &cobra.Command{
		Use:   "edit <id|file>",
		Short: "Edit an existing " + e.Title + " loaded from the backend or a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := app.existing(ctx, e, args[0])
			if err != nil {
				return err
			}
			if !e.Persisted(rec) {
				return fmt.Errorf("%s has no %s; use \"new\" to create it", args[0], e.IDField)
			}
			ed := forms.NewEditor(e, forms.ModeEdit, rec, nil)
			return app.edit(ctx, cmd.OutOrStdout(), ed, sets, headless)
		},
	}

	cmd.Flags().Var(&sets, "set", "Set a field before editing (repeatable)")
	cmd.Flags().BoolVar(&headless, "submit", false, "Apply --set values and submit without prompting")
	return cmd
}

func newEntityListCmd(app *App, e *forms.Entity) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent " + e.Title + " records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.printRecent(cmd.Context(), cmd.OutOrStdout(), e, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of records to show")
	return cmd
}

// existing loads a record by numeric id from the backend, or from a file.
func (a *App) existing(ctx context.Context, e *forms.Entity, ref string) (forms.Record, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return a.Records.Load(ctx, e, id)
	}
	return readRecordFile(ref)
}

func readRecordFile(path string) (forms.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return forms.Record{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var rec forms.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return forms.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// edit applies overrides and then either prompts or submits directly.
func (a *App) edit(ctx context.Context, out io.Writer, ed *forms.Editor, sets overrides, headless bool) error {
	for _, name := range sets.names() {
		if err := ed.State.Set(name, sets[name]); err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
	}
	if headless || !a.interactive() {
		return a.submitDirect(ctx, out, ed)
	}

	err := newEditSession(a, ed, out).run(ctx)
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(out, formatter.Dim("Cancelled."))
		return nil
	}
	return err
}

// submitDirect walks the wizard gates in order, stopping at the first step
// that does not validate, then submits.
func (a *App) submitDirect(ctx context.Context, out io.Writer, ed *forms.Editor) error {
	if w := ed.Wizard; w != nil {
		for !w.IsLast() {
			if err := ed.Advance(); err != nil {
				return fmt.Errorf("step %q: %w", w.Current().Title, err)
			}
		}
	}
	_, err := a.Assembler.Submit(ctx, ed.Entity, ed.Mode, ed.Record(), func(resp json.RawMessage) {
		a.printSaved(ctx, out, ed.Entity, ed.Mode, resp)
	})
	return err
}

// printSaved reports the saved identifier and, after a create, the most
// recent records so the new one can be seen in context.
func (a *App) printSaved(ctx context.Context, out io.Writer, e *forms.Entity, mode forms.Mode, resp json.RawMessage) {
	var rec forms.Record
	if err := json.Unmarshal(resp, &rec); err == nil {
		if id := rec.Values.String(e.IDField); id != "" && id != "0" {
			fmt.Fprintf(out, "%s %s\n", formatter.Dim(e.Title+" id"), formatter.Bold(id))
		}
	}
	if mode != forms.ModeAdd || a.Records == nil {
		return
	}
	if err := a.printRecent(ctx, out, e, 5); err != nil {
		a.Log.WithError(err).Warn("could not list recent records")
	}
}

func (a *App) printRecent(ctx context.Context, out io.Writer, e *forms.Entity, limit int) error {
	recs, err := a.Records.Recent(ctx, e, limit)
	if err != nil {
		return err
	}
	cols := listColumns[e.Name]
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = columnHeader(e, c)
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = displayValue(e.Schema, c, r.Values.String(c))
		}
		rows[i] = row
	}
	fmt.Fprintln(out, formatter.Header("Recent "+e.Title+" records"))
	if len(rows) == 0 {
		fmt.Fprintln(out, formatter.Dim("None yet."))
		return nil
	}
	fmt.Fprint(out, formatter.RenderTable(headers, rows))
	return nil
}

func columnHeader(e *forms.Entity, name string) string {
	if name == e.IDField {
		return "ID"
	}
	return fieldLabel(e.Schema, name)
}

// displayValue shows dates without their time part and static options by
// label; lookup ids are printed as stored.
func displayValue(schema *form.Schema, name, v string) string {
	f, ok := schema.Field(name)
	if !ok {
		return v
	}
	if f.Kind == form.KindDate {
		return form.NormalizeDate(v)
	}
	for _, o := range f.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}
