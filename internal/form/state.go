package form

import "fmt"

// State owns the scalar values of one form instance.
type State struct {
	schema *Schema
	values Values
}

// NewState merges the schema defaults with an existing record. Keys of the
// record that the schema does not declare are kept so identifiers survive an
// edit round-trip. Date fields are normalised and every watcher runs once.
func NewState(schema *Schema, existing Values) *State {
	s := &State{schema: schema}
	s.Load(existing)
	return s
}

// Schema returns the schema the state was built from.
func (s *State) Schema() *Schema { return s.schema }

// Load replaces the current values with defaults merged with v.
func (s *State) Load(v Values) {
	values := s.schema.Defaults()
	for k, val := range v {
		values[k] = val
	}
	for _, f := range s.schema.Fields {
		if f.Kind == KindDate {
			values[f.Name] = NormalizeDate(values[f.Name])
		}
	}
	s.values = values
	s.schema.dispatch(s.values, s.schema.FieldNames()...)
}

// Reset restores the declared defaults.
func (s *State) Reset() { s.Load(nil) }

// Get returns the raw value of name.
func (s *State) Get(name string) string { return s.values[name] }

// Values returns a copy of the current values.
func (s *State) Values() Values { return s.values.Clone() }

// Set stores one value and then runs the watchers listening on name.
func (s *State) Set(name, value string) error {
	f, ok := s.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if f.Derived {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if s.values[name] == value {
		return nil
	}
	s.values[name] = value
	s.schema.dispatch(s.values, name)
	return nil
}

// Visible reports whether name is currently shown.
func (s *State) Visible(name string) bool {
	f, ok := s.schema.Field(name)
	return ok && f.Visible(s.values)
}

// Validate checks the named fields, or every field when none are named.
// Hidden and derived fields are skipped. Returns nil or FieldErrors.
func (s *State) Validate(names ...string) error {
	if len(names) == 0 {
		names = s.schema.FieldNames()
	}
	var errs FieldErrors
	for _, name := range names {
		f, ok := s.schema.Field(name)
		if !ok {
			errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("%s: %v", name, ErrUnknownField)})
			continue
		}
		if f.Derived || !f.Visible(s.values) {
			continue
		}
		if msg := CheckField(f, s.values[name]); msg != "" {
			errs = append(errs, FieldError{Field: name, Message: msg})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Valid reports whether Validate(names...) passes.
func (s *State) Valid(names ...string) bool {
	return s.Validate(names...) == nil
}
