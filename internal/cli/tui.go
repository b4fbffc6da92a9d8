package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// demoListModel - Interactive demo selection
// =============================================================================

// demoListModel is the bubbletea model for the demo picker.
type demoListModel struct {
	entries  []demoEntry
	cursor   int
	selected *demoEntry
}

// newDemoListModel creates a picker over the given demos.
func newDemoListModel(entries []demoEntry) demoListModel {
	return demoListModel{entries: entries}
}

func (m demoListModel) Init() tea.Cmd {
	return nil
}

func (m demoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = &m.entries[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m demoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Demo"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, d := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-10s %s", cursor, d.Name, listDimStyle.Render(d.Description))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}

// pickDemo runs the interactive picker and returns the chosen demo, or
// nil if the picker was dismissed without a choice.
func pickDemo() (*demoEntry, error) {
	p := tea.NewProgram(newDemoListModel(demos))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("demo picker: %w", err)
	}
	m, ok := final.(demoListModel)
	if !ok || m.selected == nil {
		return nil, nil
	}
	return m.selected, nil
}
