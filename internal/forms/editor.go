package forms

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/freightdesk/internal/form"
)

// ChildEditor is the reusable sub-form of one child collection. It
// satisfies form.Subform so the collection can reset and load it.
type ChildEditor struct {
	Spec  ChildSpec
	State *form.State

	nested map[string]*form.Collection[Record]
	subs   map[string]*ChildEditor
}

var _ form.Subform[Record] = (*ChildEditor)(nil)

func newChildEditor(spec ChildSpec) *ChildEditor {
	ce := &ChildEditor{
		Spec:   spec,
		State:  form.NewState(spec.Schema, nil),
		nested: map[string]*form.Collection[Record]{},
		subs:   map[string]*ChildEditor{},
	}
	for _, kid := range spec.Children {
		ce.subs[kid.Key] = newChildEditor(kid)
	}
	ce.load(nil)
	return ce
}

// Reset clears the sub-form back to its defaults with empty nested lists.
func (ce *ChildEditor) Reset() {
	ce.State.Reset()
	ce.load(nil)
}

// Load fills the sub-form from an existing child record.
func (ce *ChildEditor) Load(rec Record) {
	ce.State.Load(rec.Values)
	ce.load(rec.Children)
}

func (ce *ChildEditor) load(children map[string][]Record) {
	for _, kid := range ce.Spec.Children {
		ce.nested[kid.Key] = form.NewCollection(kid.Key, form.Subform[Record](ce.subs[kid.Key]), cloneAll(children[kid.Key])...)
	}
}

// Collection returns a nested collection, e.g. invoice items.
func (ce *ChildEditor) Collection(key string) (*form.Collection[Record], *ChildEditor, error) {
	c, ok := ce.nested[key]
	if !ok {
		return nil, nil, fmt.Errorf("%s has no child list %q", ce.Spec.Key, key)
	}
	return c, ce.subs[key], nil
}

// Record returns the sub-form contents as a child record.
func (ce *ChildEditor) Record() Record {
	rec := NewRecord(ce.State.Values())
	for _, kid := range ce.Spec.Children {
		rec.Children[kid.Key] = ce.nested[kid.Key].Items()
	}
	if ce.Spec.Finalize != nil {
		ce.Spec.Finalize(&rec)
	}
	return rec
}

// Refresh writes the values Finalize derives from nested lists back into the
// sub-form, so an open invoice shows totals for its current items.
func (ce *ChildEditor) Refresh() {
	if ce.Spec.Finalize == nil {
		return
	}
	ce.State.Load(ce.Record().Values)
}

// Validate checks the sub-form fields and every nested record.
func (ce *ChildEditor) Validate() error {
	var errs form.FieldErrors
	if err := ce.State.Validate(); err != nil {
		errs = append(errs, err.(form.FieldErrors)...)
	}
	errs = append(errs, checkChildren(ce.Spec.Children, "", ce.Record())...)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Editor binds one master record to its form state, optional wizard and
// child collections.
type Editor struct {
	Entity *Entity
	Mode   Mode
	State  *form.State
	Wizard *form.Wizard

	collections map[string]*form.Collection[Record]
	subs        map[string]*ChildEditor
}

// NewEditor opens rec for editing. In add mode the entity's Initial values
// are merged underneath rec; a blank value in rec never hides a seeded one.
func NewEditor(e *Entity, mode Mode, rec Record, seed form.Values) *Editor {
	values := form.Values{}
	for k, v := range seed {
		values[k] = v
	}
	for k, v := range rec.Values {
		if strings.TrimSpace(v) == "" && values[k] != "" {
			continue
		}
		values[k] = v
	}
	ed := &Editor{
		Entity:      e,
		Mode:        mode,
		State:       form.NewState(e.Schema, values),
		collections: map[string]*form.Collection[Record]{},
		subs:        map[string]*ChildEditor{},
	}
	if e.Wizard {
		ed.Wizard = form.NewWizard(ed.State, e.Steps)
	}
	for _, spec := range e.Children {
		sub := newChildEditor(spec)
		ed.subs[spec.Key] = sub
		ed.collections[spec.Key] = form.NewCollection(spec.Key, form.Subform[Record](sub), cloneAll(rec.Children[spec.Key])...)
	}
	return ed
}

// Collection returns a child collection and its sub-form.
func (ed *Editor) Collection(key string) (*form.Collection[Record], *ChildEditor, error) {
	c, ok := ed.collections[key]
	if !ok {
		return nil, nil, fmt.Errorf("%s has no child list %q", ed.Entity.Name, key)
	}
	return c, ed.subs[key], nil
}

// Advance moves the wizard past the current step. A step that manages a
// child list also needs that list's requirement met; the failure is an
// *UnmetError and the step is unchanged.
func (ed *Editor) Advance() error {
	if ed.Wizard == nil {
		return fmt.Errorf("%s has no wizard", ed.Entity.Name)
	}
	if step := ed.Wizard.Current(); !ed.Wizard.IsLast() {
		if req, unmet := ed.Entity.UnmetFor(ed.Record(), step.Collection); unmet {
			return &UnmetError{Requirement: req}
		}
	}
	return ed.Wizard.Advance()
}

// Record returns the master values with every child list, in list order.
func (ed *Editor) Record() Record {
	rec := NewRecord(ed.State.Values())
	for _, spec := range ed.Entity.Children {
		rec.Children[spec.Key] = ed.collections[spec.Key].Items()
	}
	return rec
}

func cloneAll(recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
