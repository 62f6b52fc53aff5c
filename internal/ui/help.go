package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "List",
			items: []helpItem{
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"ctrl+d/u", "Half page down/up"},
				{"enter/o", "Open link (edit note)"},
				{"y", "Copy URL"},
				{"/", "Search"},
				{"r", "Refresh"},
			},
		},
		{
			title: "Items",
			items: []helpItem{
				{"a", "Add link"},
				{"n", "Add note"},
				{"e", "Edit"},
				{"d", "Delete"},
			},
		},
		{
			title: "Forms",
			items: []helpItem{
				{"tab", "Next field"},
				{"ctrl+v", "Paste clipboard"},
				{"ctrl+s", "Save"},
				{"esc", "Back"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"s", "Settings"},
				{"L", "Request log"},
				{"T", "Cycle theme"},
				{"x", "Dismiss notice"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
