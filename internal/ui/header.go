package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: server, item count, fetch state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("linksaver", styles.Logo)}

	settings := m.currentSettings()
	if !settings.Configured() {
		parts = append(parts, bg.Render("Settings not configured", styles.WarningText.Bold(true)))
		return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
	}

	host := hostOf(settings.BaseURL)
	if host == "" {
		host = settings.BaseURL
	}
	parts = append(parts, bg.Render(truncate(host, 40), styles.InfoText))

	if m.list.HasData {
		parts = append(parts,
			bg.Render("Items:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.list.Data)), styles.Text))
	}

	if m.list.Loading() {
		parts = append(parts, bg.Render(m.spinner.View()+" Loading", styles.WarningText))
	} else if ts := formatTimestamp(m.list.LastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if term := m.search.Value(); term != "" && !m.searching {
		parts = append(parts, bg.Render("/"+truncate(term, 24), styles.AccentText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	out := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.view == ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Reload"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case m.isFormView():
		commands = []cmd{
			{"tab", "Next"},
			{"ctrl+v", "Paste"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}
	case m.searching:
		commands = []cmd{
			{"enter", "Done"},
			{"esc", "Clear"},
		}
	default:
		commands = []cmd{
			{"a", "Link"},
			{"n", "Note"},
			{"enter", "Open"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"/", "Search"},
			{"r", "Refresh"},
			{"s", "Settings"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderNotice renders the bottom line: the search input while searching,
// otherwise the latest notice.
func (m Model) renderNotice() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.view == ViewList && m.searching:
		content = m.search.View()
	case m.notice.Failed():
		content = bg.Render("!", styles.DangerText.Bold(true)) + bg.Space() +
			bg.Render(truncate(singleLine(m.notice.Text), max(m.width-4, 10)), styles.DangerText)
	case !m.notice.Empty():
		content = bg.Render(truncate(singleLine(m.notice.Text), max(m.width-2, 10)), styles.SuccessText)
	}
	return styles.Header.Width(m.width).Render(content)
}
