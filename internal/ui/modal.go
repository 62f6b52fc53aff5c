package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linksaver/internal/linkapi"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmDelete asks before an item is deleted.
type confirmDelete struct {
	item linkapi.Item
}

func newConfirmDelete(item linkapi.Item) confirmDelete {
	return confirmDelete{item: item}
}

func (c confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		id := c.item.ID
		return c, func() tea.Msg { return deleteConfirmedMsg{id: id} }, true
	case key.Matches(keyMsg, keys.Cancel):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDelete) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Bold(true).Render("Delete " + c.item.Kind() + "?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(truncate(singleLine(c.item.DisplayTitle()), 44)))
	if !c.item.IsNote() {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(truncate(c.item.URL, 44)))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.MutedText.Render(" delete   ") +
		styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(50).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)))
}
