package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"github.com/alexanderramin/freightdesk/internal/refdata"
)

// editSession drives one editor through the prompter until the record is
// submitted or the user cancels.
type editSession struct {
	app    *App
	ed     *forms.Editor
	loader *refdata.Loader
	out    io.Writer
}

func newEditSession(app *App, ed *forms.Editor, out io.Writer) *editSession {
	return &editSession{app: app, ed: ed, loader: app.newLoader(), out: out}
}

// loadLookups fetches the lists the entity uses behind a spinner and warns
// about every list that fell back.
func (s *editSession) loadLookups(ctx context.Context) error {
	kinds := entityLookups(s.ed.Entity)
	var loadErr error
	err := s.app.Prompter.Wait("Loading reference data…", func() {
		loadErr = s.loader.LoadKinds(ctx, kinds...)
	})
	if err != nil {
		return err
	}
	if loadErr != nil {
		return loadErr
	}
	for _, k := range kinds {
		if st := s.loader.State(k); st.Err != nil {
			lk, _ := s.loader.Lookup(k)
			s.app.Notify.Warn(fmt.Sprintf("Could not load %s; using the fallback list", strings.ToLower(lk.Title)))
		}
	}
	return nil
}

func (s *editSession) run(ctx context.Context) error {
	if err := s.loadLookups(ctx); err != nil {
		return err
	}
	if s.ed.Wizard != nil {
		return s.runWizard(ctx)
	}
	return s.runTabs(ctx)
}

func (s *editSession) runWizard(ctx context.Context) error {
	w := s.ed.Wizard
	steps := w.Steps()
	for {
		step := w.Current()
		if w.IsLast() {
			fmt.Fprintln(s.out, s.summary())
		}
		if err := s.step(step); err != nil {
			return err
		}

		var choices []Choice
		if w.IsLast() {
			choices = append(choices, Choice{Label: "Submit", Key: "submit"})
		} else {
			choices = append(choices, Choice{Label: "Next: " + steps[w.Index()+1].Title, Key: "next"})
		}
		if w.Index() > 0 {
			choices = append(choices, Choice{Label: "Back", Key: "back"})
		}
		choices = append(choices, Choice{Label: "Cancel", Key: "cancel"})

		title := fmt.Sprintf("%s · step %d of %d: %s", s.ed.Entity.Title, w.Index()+1, len(steps), step.Title)
		pick, err := s.app.Prompter.Choose(title, choices)
		if err != nil {
			return err
		}
		switch pick {
		case "next":
			if err := s.ed.Advance(); err != nil {
				s.reportInvalid(s.ed.State.Schema(), err)
			}
		case "back":
			_ = w.Retreat()
		case "submit":
			if s.submit(ctx) {
				return nil
			}
		default:
			return errCancelled
		}
	}
}

// runTabs lets the user visit sections in any order; all rules are checked
// on submit.
func (s *editSession) runTabs(ctx context.Context) error {
	steps := s.ed.Entity.Steps
	for {
		choices := make([]Choice, 0, len(steps)+2)
		for _, st := range steps {
			choices = append(choices, Choice{Label: st.Title, Key: st.Name})
		}
		choices = append(choices, Choice{Label: "Submit", Key: "submit"}, Choice{Label: "Cancel", Key: "cancel"})

		pick, err := s.app.Prompter.Choose(s.ed.Entity.Title, choices)
		if err != nil {
			return err
		}
		switch pick {
		case "submit":
			if s.submit(ctx) {
				return nil
			}
			continue
		case "cancel", "":
			return errCancelled
		}
		for _, st := range steps {
			if st.Name == pick {
				if err := s.step(st); err != nil && !errors.Is(err, errCancelled) {
					return err
				}
			}
		}
	}
}

func (s *editSession) step(step form.Step) error {
	if step.Collection == "" {
		return s.app.Prompter.Fields(step.Title, s.ed.State, step.Fields, s.options)
	}
	coll, sub, err := s.ed.Collection(step.Collection)
	if err != nil {
		return err
	}
	return s.browse(coll, sub)
}

func (s *editSession) browse(coll *form.Collection[forms.Record], sub *forms.ChildEditor) error {
	spec := sub.Spec
	for {
		action, idx, err := s.app.Prompter.Browse(spec.Title, s.columnTitles(spec), s.rows(spec, coll.Items()))
		if err != nil {
			return err
		}
		switch action {
		case RowAdd:
			coll.OpenForAdd()
		case RowEdit:
			if err := coll.OpenForEdit(idx); err != nil {
				return err
			}
		case RowDelete:
			if _, err := coll.Delete(idx, func(forms.Record) bool {
				ok, err := s.app.Prompter.Confirm(fmt.Sprintf("Delete %s %d?", strings.ToLower(spec.Singular), idx+1))
				return err == nil && ok
			}); err != nil {
				return err
			}
			continue
		default:
			return nil
		}
		if err := s.editChild(coll, sub); err != nil {
			return err
		}
	}
}

// editChild fills the open sub-form and saves it into coll. Cancelling or
// declining to fix an invalid row discards the sub-form.
func (s *editSession) editChild(coll *form.Collection[forms.Record], sub *forms.ChildEditor) error {
	spec := sub.Spec
	for {
		err := s.app.Prompter.Fields(spec.Singular, sub.State, spec.Schema.FieldNames(), s.options)
		if errors.Is(err, errCancelled) {
			coll.Cancel()
			return nil
		}
		if err != nil {
			coll.Cancel()
			return err
		}
		for _, kid := range spec.Children {
			nested, nsub, err := sub.Collection(kid.Key)
			if err != nil {
				return err
			}
			if err := s.browse(nested, nsub); err != nil {
				return err
			}
		}
		sub.Refresh()

		if err := sub.Validate(); err != nil {
			s.reportInvalid(spec.Schema, err)
			again, cerr := s.app.Prompter.Confirm("Fix this " + strings.ToLower(spec.Singular) + "?")
			if cerr != nil || !again {
				coll.Cancel()
				return nil
			}
			continue
		}
		return coll.Save(sub.Record())
	}
}

// submit reports whether the record was saved. Failures are already
// notified, so the form simply stays open.
func (s *editSession) submit(ctx context.Context) bool {
	_, err := s.app.Assembler.Submit(ctx, s.ed.Entity, s.ed.Mode, s.ed.Record(), func(resp json.RawMessage) {
		s.app.printSaved(ctx, s.out, s.ed.Entity, s.ed.Mode, resp)
	})
	return err == nil
}

func (s *editSession) options(f form.Field) []domain.Option {
	if f.Lookup != "" {
		return s.loader.Options(refdata.Kind(f.Lookup))
	}
	return f.Options
}

// display renders a stored value the way the user picked it.
func (s *editSession) display(f form.Field, v string) string {
	if f.Lookup != "" {
		return s.loader.Label(refdata.Kind(f.Lookup), v)
	}
	for _, o := range f.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

func (s *editSession) columnTitles(spec forms.ChildSpec) []string {
	out := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		out[i] = fieldLabel(spec.Schema, c)
	}
	return out
}

func (s *editSession) rows(spec forms.ChildSpec, items []forms.Record) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		row := make([]string, len(spec.Columns))
		for j, c := range spec.Columns {
			f, _ := spec.Schema.Field(c)
			row[j] = s.display(f, it.Values[c])
		}
		rows[i] = row
	}
	return rows
}

// summary renders the visible master fields and child counts before the
// final step.
func (s *editSession) summary() string {
	var pairs [][2]string
	schema := s.ed.State.Schema()
	for _, f := range schema.Fields {
		if f.Kind == form.KindHidden || !s.ed.State.Visible(f.Name) {
			continue
		}
		v := s.ed.State.Get(f.Name)
		if v == "" {
			continue
		}
		pairs = append(pairs, [2]string{f.Label, s.display(f, v)})
	}
	rec := s.ed.Record()
	for _, spec := range s.ed.Entity.Children {
		pairs = append(pairs, [2]string{spec.Title, fmt.Sprintf("%d", len(rec.Children[spec.Key]))})
	}
	return formatter.RenderBox(s.ed.Entity.Title, strings.TrimSuffix(formatter.KeyValues(pairs), "\n"))
}

func (s *editSession) reportInvalid(schema *form.Schema, err error) {
	var fe form.FieldErrors
	if !errors.As(err, &fe) {
		s.app.Notify.Error(err.Error())
		return
	}
	for _, e := range fe {
		label := fieldLabel(schema, e.Field)
		msg := e.Message
		// nested paths already carry a "Row n:" prefix
		if !strings.Contains(e.Field, "[") && !strings.HasPrefix(msg, label) {
			msg = label + " " + msg
		}
		s.app.Notify.Error(msg)
	}
}

func fieldLabel(schema *form.Schema, name string) string {
	if f, ok := schema.Field(name); ok && f.Label != "" {
		return f.Label
	}
	return name
}

// entityLookups lists every reference list the entity's fields draw on,
// children included, in first-use order.
func entityLookups(e *forms.Entity) []refdata.Kind {
	seen := map[refdata.Kind]bool{}
	var kinds []refdata.Kind
	var walk func(schema *form.Schema, children []forms.ChildSpec)
	walk = func(schema *form.Schema, children []forms.ChildSpec) {
		for _, f := range schema.Fields {
			k := refdata.Kind(f.Lookup)
			if f.Lookup != "" && !seen[k] {
				seen[k] = true
				kinds = append(kinds, k)
			}
		}
		for _, c := range children {
			walk(c.Schema, c.Children)
		}
	}
	walk(e.Schema, e.Children)
	return kinds
}
