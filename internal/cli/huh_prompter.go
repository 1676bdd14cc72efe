package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/form"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// freightdeskHuhTheme styles huh forms with the formatter palette.
func freightdeskHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhPrompter prompts on the terminal with huh forms and a bubbletea
// collection browser.
type huhPrompter struct{}

// NewTerminalPrompter returns the interactive terminal prompter.
func NewTerminalPrompter() Prompter { return huhPrompter{} }

func runForm(groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithTheme(freightdeskHuhTheme()).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errCancelled
	}
	return err
}

// Fields puts each field in its own group so visibility is re-evaluated
// after every answer; a shipping mode change hides the sea-only fields
// that follow it.
func (huhPrompter) Fields(title string, st *form.State, names []string, options OptionsFunc) error {
	strs := map[string]*string{}
	bools := map[string]*bool{}
	var groups []*huh.Group

	for _, name := range names {
		f, ok := st.Schema().Field(name)
		if !ok || f.Derived || f.Kind == form.KindHidden {
			continue
		}
		field := huhField(f, st, options, strs, bools)
		g := huh.NewGroup(field).WithHideFunc(func() bool { return !st.Visible(f.Name) })
		if len(groups) == 0 {
			g = g.Title(title)
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil
	}
	if err := runForm(groups...); err != nil {
		return err
	}

	// Write the final answers back in prompt order.
	for _, name := range names {
		if !st.Visible(name) {
			continue
		}
		var err error
		if p, ok := strs[name]; ok {
			err = st.Set(name, *p)
		} else if p, ok := bools[name]; ok {
			err = st.Set(name, strconv.FormatBool(*p))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// setAndCheck stores an answer and reports the field's rule failure.
func setAndCheck(st *form.State, f form.Field, v string) error {
	if err := st.Set(f.Name, v); err != nil {
		return err
	}
	if msg := form.CheckField(f, v); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func huhField(f form.Field, st *form.State, options OptionsFunc, strs map[string]*string, bools map[string]*bool) huh.Field {
	title := f.Label
	if f.Required {
		title += " *"
	}

	switch f.Kind {
	case form.KindBool:
		v := st.Get(f.Name) == "true"
		bools[f.Name] = &v
		return huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&v).
			Validate(func(b bool) error { return setAndCheck(st, f, strconv.FormatBool(b)) })

	case form.KindSelect:
		v := st.Get(f.Name)
		strs[f.Name] = &v
		return huh.NewSelect[string]().Title(title).Height(10).
			Options(huhOptions(f, options)...).
			Value(&v).
			Validate(func(s string) error { return setAndCheck(st, f, s) })

	default:
		v := st.Get(f.Name)
		strs[f.Name] = &v
		in := huh.NewInput().Title(title).Value(&v).
			Validate(func(s string) error { return setAndCheck(st, f, s) })
		if ph := placeholder(f); ph != "" {
			in = in.Placeholder(ph)
		}
		return in
	}
}

func huhOptions(f form.Field, options OptionsFunc) []huh.Option[string] {
	var opts []domain.Option
	if options != nil {
		opts = options(f)
	}
	out := make([]huh.Option[string], 0, len(opts)+1)
	if !f.Required {
		out = append(out, huh.NewOption("(none)", ""))
	}
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

func placeholder(f form.Field) string {
	switch f.Kind {
	case form.KindDate:
		return form.DateLayout
	case form.KindNumber, form.KindInteger:
		if f.Min != nil {
			return fmt.Sprintf(">= %s", strconv.FormatFloat(*f.Min, 'f', -1, 64))
		}
	}
	return ""
}

func (huhPrompter) Choose(title string, choices []Choice) (string, error) {
	var picked string
	opts := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		opts = append(opts, huh.NewOption(c.Label, c.Key))
	}
	if err := runForm(huh.NewGroup(huh.NewSelect[string]().Title(title).Options(opts...).Value(&picked))); err != nil {
		return "", err
	}
	return picked, nil
}

func (huhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := runForm(huh.NewGroup(huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok)))
	return ok, err
}

func (huhPrompter) Browse(title string, columns []string, rows [][]string) (RowAction, int, error) {
	final, err := tea.NewProgram(newCollectionView(title, columns, rows)).Run()
	if err != nil {
		return RowDone, -1, err
	}
	v := final.(*collectionView)
	return v.action, v.index, nil
}

func (huhPrompter) Wait(title string, fn func()) error {
	return spinner.New().
		Title(title).
		TitleStyle(formatter.StyleDim).
		Action(fn).
		Run()
}
