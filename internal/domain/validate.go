package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report backend-facing names so messages line up with the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists every field that failed a boundary check.
type ValidationError struct {
	Fields map[string]string // namespace -> failed tag
	order  []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, e.Fields[f]))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

// Validate checks v against its struct tags. Returns nil or *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %T: %w", v, err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ns := fe.Namespace()
		// Drop the leading struct name: "JobPayload.equipments[0].netWeight".
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		if _, seen := out.Fields[ns]; !seen {
			out.order = append(out.order, ns)
		}
		out.Fields[ns] = fe.Tag()
	}
	return out
}
