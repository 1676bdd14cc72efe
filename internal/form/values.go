// Package form is a configuration-driven form engine: declarative field
// schemas with per-field rules, a mutable form state with cross-field
// watchers, step-gated wizards and child-collection editors.
//
// All field values are held as strings, the way a terminal form edits them.
// Typed accessors parse on read and fall back to the zero value.
package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format every date field is normalised to.
const DateLayout = "2006-01-02"

// Values maps field names to their raw string values.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// String returns the trimmed value of name.
func (v Values) String(name string) string {
	return strings.TrimSpace(v[name])
}

// Decimal parses name as a decimal; blank or invalid input reads as zero.
func (v Values) Decimal(name string) decimal.Decimal {
	d, err := decimal.NewFromString(v.String(name))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Int parses name as an integer. Whole decimals such as "3.0" are accepted.
func (v Values) Int(name string) int {
	s := v.String(name)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return int(d.IntPart())
}

// Float parses name as a float64 for numeric payload fields.
func (v Values) Float(name string) float64 {
	f, _ := v.Decimal(name).Float64()
	return f
}

// Bool parses name with strconv.ParseBool; anything else is false.
func (v Values) Bool(name string) bool {
	b, err := strconv.ParseBool(v.String(name))
	return err == nil && b
}

// DatePtr returns nil for a blank value, otherwise the normalised date.
func (v Values) DatePtr(name string) *string {
	return domain.StrPtrOrNil(NormalizeDate(v.String(name)))
}

var dateInputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// NormalizeDate rewrites any recognised timestamp or date as YYYY-MM-DD.
// Unrecognised input is returned unchanged so validation can report it.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}
