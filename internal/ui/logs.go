package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linksaver/internal/app"
	"github.com/five82/linksaver/internal/logtail"
)

// logState holds the request log view state.
type logState struct {
	entries []logtail.Entry
	loaded  bool
	err     error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// loadLogsCmd reads the tail of the log file off the UI goroutine.
func (m Model) loadLogsCmd() tea.Cmd {
	path, limit := m.logPath, m.logLines
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, limit)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logState.loaded = true
	m.logState.err = msg.err
	if msg.err == nil {
		entries := make([]logtail.Entry, 0, len(msg.lines))
		for _, line := range msg.lines {
			entries = append(entries, logtail.Parse(line))
		}
		m.logState.entries = entries
	}
	m.updateLogViewport()
	m.logViewport.GotoBottom()
}

// initLogViewport initializes the log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 1), max(m.height-chromeHeight-2, 1))
	m.logViewport.Style = lipgloss.NewStyle()
}

// updateLogViewport resizes the viewport and re-renders its content.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-chromeHeight-2, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
}

func (m Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	width := m.logViewport.Width

	switch {
	case m.logState.err != nil:
		return bg.FillLine(bg.Render("Could not read log: "+m.logState.err.Error(), styles.DangerText), width)
	case !m.logState.loaded:
		return bg.FillLine(bg.Render("Loading log...", styles.MutedText), width)
	case len(m.logState.entries) == 0:
		return bg.FillLine(bg.Render("No requests logged yet", styles.MutedText), width)
	}

	lines := make([]string, 0, len(m.logState.entries))
	for _, e := range m.logState.entries {
		lines = append(lines, bg.FillLine(m.renderLogEntry(e, styles, bg, width), width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLogEntry(e logtail.Entry, styles Styles, bg BgStyle, width int) string {
	msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.KindColor(logKindName(e.Kind))))
	if e.Time.IsZero() {
		return bg.Render(truncate(e.Raw, width), msgStyle)
	}
	stamp := e.Time.Format("15:04:05")
	return bg.Render(stamp, styles.FaintText) + bg.Space() +
		bg.Render(truncate(e.Message, max(width-len(stamp)-1, 1)), msgStyle)
}

func logKindName(k logtail.Kind) string {
	switch k {
	case logtail.KindRequest:
		return "request"
	case logtail.KindResponse:
		return "response"
	case logtail.KindFailure:
		return "failure"
	default:
		return ""
	}
}

// renderLogs renders the request log view.
func (m Model) renderLogs(height int) string {
	title := "Request Log"
	if m.logPath != "" {
		title = fmt.Sprintf("Request Log  %s", truncate(m.logPath, max(m.width/2, 10)))
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, height, true)
}

// handleLogsKey processes keyboard input for the request log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showList()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.notice = app.Notice{}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadLogsCmd()
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		return m, nil
	}
	return m, nil
}
