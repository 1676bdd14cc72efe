package form

// Watcher reacts to changes of the fields named in On. Watchers hold every
// cross-field effect: derivations and clearing of dependent fields.
type Watcher struct {
	Name  string
	On    []string
	Apply func(Values)
}

func (w Watcher) watches(dirty map[string]bool) bool {
	for _, name := range w.On {
		if dirty[name] {
			return true
		}
	}
	return false
}

// Derive writes compute(values) into each target whenever any input changes.
func Derive(name string, on []string, compute func(Values) map[string]string) Watcher {
	return Watcher{
		Name: name,
		On:   on,
		Apply: func(v Values) {
			for k, val := range compute(v) {
				v[k] = val
			}
		},
	}
}

// ClearWhen blanks fields whenever hidden reports true after a change of on.
func ClearWhen(on string, hidden func(Values) bool, fields ...string) Watcher {
	return Watcher{
		Name: "clear:" + on,
		On:   []string{on},
		Apply: func(v Values) {
			if !hidden(v) {
				return
			}
			for _, f := range fields {
				v[f] = ""
			}
		},
	}
}

// Schema is the declarative description of one form.
type Schema struct {
	Name   string
	Fields []Field
	// Watchers run in declaration order; list derivations before anything
	// that depends on their outputs.
	Watchers []Watcher
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns every field name in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Defaults returns a fresh value set holding each field's declared default.
func (s *Schema) Defaults() Values {
	v := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		v[f.Name] = f.Default
	}
	return v
}

// RestoreWhen puts back the declared default of each blank field whenever
// shown reports true after a change of on. It undoes a ClearWhen on the same
// field once the field is visible again.
func (s *Schema) RestoreWhen(on string, shown func(Values) bool, fields ...string) Watcher {
	return Watcher{
		Name: "restore:" + on,
		On:   []string{on},
		Apply: func(v Values) {
			if !shown(v) {
				return
			}
			for _, name := range fields {
				if f, ok := s.Field(name); ok && v[name] == "" {
					v[name] = f.Default
				}
			}
		},
	}
}

// dispatch runs the watchers triggered by the changed fields. A watcher that
// changes values marks those fields dirty for the watchers after it.
func (s *Schema) dispatch(v Values, changed ...string) {
	dirty := make(map[string]bool, len(changed))
	for _, c := range changed {
		dirty[c] = true
	}
	for _, w := range s.Watchers {
		if !w.watches(dirty) {
			continue
		}
		before := v.Clone()
		w.Apply(v)
		for k, val := range v {
			if before[k] != val {
				dirty[k] = true
			}
		}
	}
}
