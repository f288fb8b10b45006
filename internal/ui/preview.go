package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const maxColumnWidth = 24

// previewModel is the Bubble Tea model for browsing predicted rows.
type previewModel struct {
	table    table.Model
	title    string
	total    int
	quitting bool
}

// NewPreview builds a scrollable table over rows. Column widths follow the
// widest cell, capped so wide files stay readable.
func NewPreview(title string, header []string, rows [][]string) *previewModel {
	cols := make([]table.Column, len(header))
	for i, h := range header {
		w := lipgloss.Width(h)
		for _, r := range rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: min(w, maxColumnWidth)}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Foreground(ColorPrimary).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(ColorText).
		Background(ColorPrimary).
		Bold(false)

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
		table.WithStyles(styles),
	)
	return &previewModel{table: t, title: title, total: len(rows)}
}

func (m *previewModel) Init() tea.Cmd { return nil }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-6, 3))
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *previewModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	var b strings.Builder
	b.WriteString(Title.Render(m.title))
	b.WriteString(" ")
	b.WriteString(Dim.Render(fmt.Sprintf("(row %d of %d)", m.table.Cursor()+1, m.total)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(Dim.Render("↑/↓: scroll · pgup/pgdn: page · q: close"))
	return tea.NewView(b.String())
}

// RunPreview shows rows in an interactive table until the user closes it.
func RunPreview(title string, header []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := tea.NewProgram(NewPreview(title, header, rows)).Run()
	return err
}
