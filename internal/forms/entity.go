package forms

import (
	"fmt"
	"time"

	"github.com/alexanderramin/freightdesk/internal/form"
)

// Mode selects create or update semantics.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Audit carries the who/when stamp and company scope for one submission.
type Audit struct {
	Mode      Mode
	Log       string
	CompanyID int
}

// logs returns the create/update audit strings for a record. New records
// get a fresh create stamp; persisted ones keep theirs and get an update
// stamp.
func (a Audit) logs(v form.Values, persisted bool) (createLog, updateLog string) {
	if !persisted {
		return a.Log, ""
	}
	return v.String("createLog"), a.Log
}

// ChildSpec declares one child collection of a record.
type ChildSpec struct {
	Key      string
	Title    string
	Singular string
	IDField  string
	Schema   *form.Schema
	// Columns are the fields shown when the collection is listed.
	Columns  []string
	Children []ChildSpec
	// Finalize recomputes values that depend on nested children.
	Finalize func(*Record)
}

// Requirement demands a non-empty child list before submission.
type Requirement struct {
	Key     string
	Message string
	// When limits the requirement; nil means always.
	When func(form.Values) bool
}

// Entity is the full configuration of one master form.
type Entity struct {
	Name     string
	Title    string
	Endpoint string
	IDField  string
	Schema   *form.Schema

	// Steps are wizard steps when Wizard is set, otherwise display tabs.
	Steps    []form.Step
	Wizard   bool
	Children []ChildSpec
	Requires []Requirement

	// Initial seeds an add-mode record, e.g. with today's date.
	Initial func(now time.Time) form.Values
	// Build maps a normalised record to the backend payload.
	Build func(rec Record, a Audit) any
}

// Child looks up a direct child spec by key.
func (e *Entity) Child(key string) (ChildSpec, bool) {
	return findChild(e.Children, key)
}

// Child looks up a nested child spec by key.
func (c ChildSpec) Child(key string) (ChildSpec, bool) {
	return findChild(c.Children, key)
}

func findChild(specs []ChildSpec, key string) (ChildSpec, bool) {
	for _, c := range specs {
		if c.Key == key {
			return c, true
		}
	}
	return ChildSpec{}, false
}

// Persisted reports whether rec already has a backend identifier.
func (e *Entity) Persisted(rec Record) bool {
	return rec.Values.Int(e.IDField) > 0
}

// Normalize passes the record and every child through its schema: defaults
// are filled, dates normalised and derived fields recomputed. Every declared
// child key is present afterwards, empty when absent.
func (e *Entity) Normalize(rec Record) Record {
	return normalize(e.Schema, e.Children, nil, rec)
}

func normalize(schema *form.Schema, children []ChildSpec, finalize func(*Record), rec Record) Record {
	out := NewRecord(form.NewState(schema, rec.Values).Values())
	for _, spec := range children {
		kids := rec.Children[spec.Key]
		list := make([]Record, 0, len(kids))
		for _, kid := range kids {
			list = append(list, normalize(spec.Schema, spec.Children, spec.Finalize, kid))
		}
		out.Children[spec.Key] = list
	}
	if finalize != nil {
		finalize(&out)
	}
	return out
}

// Check validates the master fields, every child record and the child-list
// requirements. It returns a form.FieldErrors naming each failure; child
// failures are keyed "equipments[1].containerNo".
func (e *Entity) Check(rec Record) error {
	var errs form.FieldErrors
	if err := form.NewState(e.Schema, rec.Values).Validate(); err != nil {
		errs = append(errs, err.(form.FieldErrors)...)
	}
	errs = append(errs, checkChildren(e.Children, "", rec)...)
	for _, req := range e.Requires {
		if req.When != nil && !req.When(rec.Values) {
			continue
		}
		if len(rec.Children[req.Key]) == 0 {
			errs = append(errs, form.FieldError{Field: req.Key, Message: req.Message})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkChildren(specs []ChildSpec, prefix string, rec Record) form.FieldErrors {
	var errs form.FieldErrors
	for _, spec := range specs {
		for i, kid := range rec.Children[spec.Key] {
			path := fmt.Sprintf("%s%s[%d]", prefix, spec.Key, i)
			if err := form.NewState(spec.Schema, kid.Values).Validate(); err != nil {
				for _, fe := range err.(form.FieldErrors) {
					errs = append(errs, form.FieldError{
						Field:   path + "." + fe.Field,
						Message: fmt.Sprintf("%s %d: %s", spec.Singular, i+1, fe.Message),
					})
				}
			}
			errs = append(errs, checkChildren(spec.Children, path+".", kid)...)
		}
	}
	return errs
}

// Unmet returns the first unmet child-list requirement, if any.
func (e *Entity) Unmet(rec Record) (Requirement, bool) {
	return e.unmet(rec, "")
}

// UnmetFor is Unmet restricted to the requirements on one child list.
func (e *Entity) UnmetFor(rec Record, key string) (Requirement, bool) {
	if key == "" {
		return Requirement{}, false
	}
	return e.unmet(rec, key)
}

func (e *Entity) unmet(rec Record, key string) (Requirement, bool) {
	for _, req := range e.Requires {
		if key != "" && req.Key != key {
			continue
		}
		if req.When != nil && !req.When(rec.Values) {
			continue
		}
		if len(rec.Children[req.Key]) == 0 {
			return req, true
		}
	}
	return Requirement{}, false
}

// UnmetError reports a child list that must not be empty.
type UnmetError struct {
	Requirement Requirement
}

func (e *UnmetError) Error() string { return e.Requirement.Message }
