package cli

import (
	"errors"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/form"
)

// errCancelled is returned when the user backs out of a prompt.
var errCancelled = errors.New("cancelled")

// RowAction is what the user chose to do in a collection browser.
type RowAction string

const (
	RowAdd    RowAction = "add"
	RowEdit   RowAction = "edit"
	RowDelete RowAction = "delete"
	RowDone   RowAction = "done"
)

// Choice is one entry of a menu.
type Choice struct {
	Label string
	Key   string
}

// OptionsFunc supplies the select options of a field.
type OptionsFunc func(f form.Field) []domain.Option

// Prompter is the interactive surface the editing flows drive. The huh and
// bubbletea implementation is used on a terminal; tests script it.
type Prompter interface {
	// Fields prompts for the named fields of st in order, writing each
	// answer through st.Set. Hidden, derived and invisible fields are skipped.
	Fields(title string, st *form.State, names []string, options OptionsFunc) error
	Choose(title string, choices []Choice) (string, error)
	Confirm(title string) (bool, error)
	// Browse lists rows and returns the chosen action and row index.
	Browse(title string, columns []string, rows [][]string) (RowAction, int, error)
	// Wait runs fn while showing title as a busy indicator.
	Wait(title string, fn func()) error
}

// promptable reports whether a field is asked for at all.
func promptable(f form.Field, st *form.State) bool {
	return !f.Derived && f.Kind != form.KindHidden && st.Visible(f.Name)
}
