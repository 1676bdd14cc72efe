package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrReadOnly     = errors.New("field is derived and read-only")
)

// FieldKind controls how a value is parsed, checked and rendered.
type FieldKind string

const (
	KindText    FieldKind = "text"
	KindNumber  FieldKind = "number"
	KindInteger FieldKind = "integer"
	KindDate    FieldKind = "date"
	KindSelect  FieldKind = "select"
	KindBool    FieldKind = "bool"
	// KindHidden fields carry identifiers and are never prompted for.
	KindHidden FieldKind = "hidden"
)

// Field declares one scalar field and its rules.
type Field struct {
	Name  string
	Label string
	Kind  FieldKind

	Required bool
	// Min is an inclusive lower bound for number and integer fields.
	Min *float64
	// NonBlank rejects values made only of whitespace.
	NonBlank bool

	Default string
	// Lookup names the reference list a select field draws options from.
	Lookup string
	// Options is a static option list for select fields without a lookup.
	Options []domain.Option

	// Derived fields are computed by watchers and cannot be set directly.
	Derived bool
	// VisibleWhen hides the field (and skips its rules) when it returns false.
	VisibleWhen func(Values) bool
}

// MinOf is shorthand for setting Field.Min.
func MinOf(v float64) *float64 { return &v }

func (f Field) title() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Visible reports whether the field is shown for the given values.
func (f Field) Visible(v Values) bool {
	return f.VisibleWhen == nil || f.VisibleWhen(v)
}

func (f Field) blank(raw string) bool {
	s := strings.TrimSpace(raw)
	// lookup selects store ids; 0 is the "nothing chosen" id
	return s == "" || (f.Lookup != "" && s == "0")
}

// CheckField applies the field's rules to raw and returns a user-facing
// message, or "" when the value passes.
func CheckField(f Field, raw string) string {
	if f.blank(raw) {
		switch {
		case f.Required:
			return fmt.Sprintf("%s is required", f.title())
		case f.NonBlank && raw != "":
			return fmt.Sprintf("%s must not be blank", f.title())
		}
		return ""
	}
	s := strings.TrimSpace(raw)

	switch f.Kind {
	case KindNumber:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Sprintf("%s must be a number", f.title())
		}
		if f.Min != nil && d.LessThan(decimal.NewFromFloat(*f.Min)) {
			return fmt.Sprintf("%s must be at least %s", f.title(), formatMin(*f.Min))
		}
	case KindInteger:
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Sprintf("%s must be a whole number", f.title())
		}
		if f.Min != nil && float64(n) < *f.Min {
			return fmt.Sprintf("%s must be at least %s", f.title(), formatMin(*f.Min))
		}
	case KindDate:
		if _, err := time.Parse(DateLayout, s); err != nil {
			return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.title())
		}
	case KindBool:
		if _, err := strconv.ParseBool(s); err != nil {
			return fmt.Sprintf("%s must be true or false", f.title())
		}
	case KindSelect:
		if f.Lookup == "" && len(f.Options) > 0 && !hasOption(f.Options, s) {
			return fmt.Sprintf("%s is not a valid choice", f.title())
		}
	}
	return ""
}

func formatMin(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hasOption(opts []domain.Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors lists failed fields in declaration order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Message
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the failed fields.
func (fe FieldErrors) Fields() []string {
	names := make([]string, len(fe))
	for i, e := range fe {
		names[i] = e.Field
	}
	return names
}

// Message returns the message for name, or "".
func (fe FieldErrors) Message(name string) string {
	for _, e := range fe {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}
