// Package forms holds the concrete job and bill-of-lading forms as data:
// schemas, steps, child collections and payload mappers.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alexanderramin/freightdesk/internal/form"
)

// Record is a master or child record as the forms edit it: scalar values
// keyed by backend field name plus named child lists.
type Record struct {
	Values   form.Values
	Children map[string][]Record
}

// NewRecord returns an empty record with initialised maps.
func NewRecord(values form.Values) Record {
	if values == nil {
		values = form.Values{}
	}
	return Record{Values: values, Children: map[string][]Record{}}
}

// Clone deep-copies the record.
func (r Record) Clone() Record {
	out := NewRecord(r.Values.Clone())
	for k, kids := range r.Children {
		cp := make([]Record, len(kids))
		for i, kid := range kids {
			cp[i] = kid.Clone()
		}
		out.Children[k] = cp
	}
	return out
}

// UnmarshalJSON reads a flat backend-shaped object. Arrays become child
// lists; strings, numbers and booleans become values; null reads as "".
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	*r = NewRecord(nil)
	for key, val := range raw {
		val = bytes.TrimSpace(val)
		switch {
		case len(val) == 0 || bytes.Equal(val, []byte("null")):
			r.Values[key] = ""
		case val[0] == '[':
			var kids []Record
			if err := json.Unmarshal(val, &kids); err != nil {
				return fmt.Errorf("decoding %s: %w", key, err)
			}
			if kids == nil {
				kids = []Record{}
			}
			r.Children[key] = kids
		case val[0] == '"':
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return fmt.Errorf("decoding %s: %w", key, err)
			}
			r.Values[key] = s
		case val[0] == '{':
			// nested objects are navigation properties; ignore them
		default:
			r.Values[key] = string(val)
		}
	}
	return nil
}

// MarshalJSON writes the record back as a flat object with string values.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Values)+len(r.Children))
	for k, v := range r.Values {
		out[k] = v
	}
	for k, kids := range r.Children {
		if kids == nil {
			kids = []Record{}
		}
		out[k] = kids
	}
	return json.Marshal(out)
}

// Keys returns the scalar keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
