package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// overrides collects repeated --set name=value flags.
type overrides map[string]string

var _ pflag.Value = (*overrides)(nil)

func (o *overrides) String() string {
	if o == nil || len(*o) == 0 {
		return ""
	}
	parts := make([]string, 0, len(*o))
	for k, v := range *o {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (o *overrides) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	if *o == nil {
		*o = overrides{}
	}
	(*o)[name] = value
	return nil
}

func (o *overrides) Type() string { return "name=value" }

// names returns the overridden field names in a stable order.
func (o overrides) names() []string {
	out := make([]string, 0, len(o))
	for k := range o {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
