package cli

import (
	"strings"

	"github.com/alexanderramin/freightdesk/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type collectionKeys struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Done   key.Binding
}

func defaultCollectionKeys() collectionKeys {
	return collectionKeys{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Done:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "done")),
	}
}

func (k collectionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Done}
}

// collectionView lists one child collection and quits as soon as the user
// picks an action; the caller performs it and reopens the view.
type collectionView struct {
	title string
	table table.Model
	keys  collectionKeys
	rows  int

	action RowAction
	index  int
}

func newCollectionView(title string, columns []string, rows [][]string) *collectionView {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c, Width: lipgloss.Width(c)}
	}
	// table rows must match the column count exactly
	trs := make([]table.Row, len(rows))
	for i, r := range rows {
		row := make(table.Row, len(cols))
		copy(row, r)
		for j, cell := range row {
			cols[j].Width = max(cols[j].Width, min(lipgloss.Width(cell), 24))
		}
		trs[i] = row
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(formatter.ColorDim).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorBlue)

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trs),
		table.WithFocused(true),
		table.WithHeight(min(max(len(trs), 1), 12)+1),
		table.WithStyles(styles),
	)
	return &collectionView{
		title:  title,
		table:  t,
		keys:   defaultCollectionKeys(),
		rows:   len(trs),
		action: RowDone,
		index:  -1,
	}
}

func (v *collectionView) Init() tea.Cmd { return nil }

func (v *collectionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, v.keys.Add):
			return v.finish(RowAdd, -1)
		case key.Matches(msg, v.keys.Edit):
			if v.rows > 0 {
				return v.finish(RowEdit, v.table.Cursor())
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if v.rows > 0 {
				return v.finish(RowDelete, v.table.Cursor())
			}
			return v, nil
		case key.Matches(msg, v.keys.Done):
			return v.finish(RowDone, -1)
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *collectionView) finish(action RowAction, index int) (tea.Model, tea.Cmd) {
	v.action = action
	v.index = index
	return v, tea.Quit
}

func (v *collectionView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(v.title))
	b.WriteString("\n")
	if v.rows == 0 {
		b.WriteString(formatter.Dim("No rows yet."))
	} else {
		b.WriteString(v.table.View())
	}
	b.WriteString("\n\n")

	help := make([]string, 0, 4)
	for _, k := range v.keys.ShortHelp() {
		h := k.Help()
		help = append(help, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	b.WriteString(strings.Join(help, formatter.Dim(" · ")))
	b.WriteString("\n")
	return b.String()
}
