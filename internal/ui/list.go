package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linksaver/internal/app"
	"github.com/five82/linksaver/internal/linkapi"
	"github.com/five82/linksaver/internal/prefs"
)

// handleListKey processes keyboard input on the list screen.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateLogViewport()
		return m, saveThemeCmd(m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.Dismiss):
		m.notice = app.Notice{}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		if m.sync != nil {
			m.sync.Refresh()
			m.list = m.sync.List()
		}
		return m, nil

	case key.Matches(msg, m.keys.AddLink):
		m.enterForm(ViewAddLink, newAddLinkForm(""))
		return m, nil

	case key.Matches(msg, m.keys.AddNote):
		m.enterForm(ViewAddNote, newAddNoteForm())
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.enterForm(ViewSettings, newSettingsForm(m.currentSettings()))
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.leaveList(ViewLogs)
		return m, m.loadLogsCmd()

	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selectedItem(); ok {
			m.openEdit(item)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if item.IsNote() {
			m.openEdit(item)
			return m, nil
		}
		return m, m.openCmd(item.URL)

	case key.Matches(msg, m.keys.Copy):
		item, ok := m.selectedItem()
		if !ok || item.IsNote() {
			return m, nil
		}
		return m, writeClipboardCmd(item.URL)

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selectedItem(); ok {
			m.modal = newConfirmDelete(item)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.list.Data)-1, 0)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveSelection(-max(m.visibleRows()/2, 1))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveSelection(max(m.visibleRows()/2, 1))
	}
	return m, nil
}

// handleSearchKey edits the search term. Every change re-fetches the list.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	if m.sync == nil {
		return
	}
	if m.sync.SetSearch(strings.TrimSpace(m.search.Value())) {
		m.list = m.sync.List()
		m.selected = 0
	}
}

func (m *Model) openEdit(item linkapi.Item) {
	m.enterForm(ViewEdit, newEditForm(item))
	if m.sync != nil {
		m.sync.OpenDetail(item.ID)
		m.detail = m.sync.Detail()
	}
}

func (m Model) selectedItem() (linkapi.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.list.Data) {
		return linkapi.Item{}, false
	}
	return m.list.Data[m.selected], true
}

func (m *Model) moveSelection(delta int) {
	m.selected += delta
	m.clampSelection()
}

func (m *Model) clampSelection() {
	m.selected = max(min(m.selected, len(m.list.Data)-1), 0)
}

// listWidth is the width of the list pane; the detail pane takes the rest.
func (m Model) listWidth() int {
	switch {
	case m.width < LayoutCompactWidth:
		return m.width
	case m.width >= LayoutExtraWideWidth:
		return m.width * 2 / 5
	default:
		return m.width / 2
	}
}

// visibleRows is the number of items that fit in the list box.
func (m Model) visibleRows() int {
	return max((m.height-chromeHeight-2)/rowsPerItem, 1)
}

// rowsPerItem is the title line plus the host or note line.
const rowsPerItem = 2

// renderList draws the list pane and, on wide terminals, the detail pane.
func (m Model) renderList(height int) string {
	listWidth := m.listWidth()
	list := m.renderTitledBox(m.listTitle(), m.renderRows(listWidth-2, height-2), listWidth, height, true)
	if listWidth >= m.width {
		return list
	}
	detailWidth := m.width - listWidth
	detail := m.renderTitledBox("Details", m.renderDetail(detailWidth-4), detailWidth, height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) listTitle() string {
	title := "Items"
	if m.list.HasData {
		title = fmt.Sprintf("Items (%d)", len(m.list.Data))
	}
	if term := strings.TrimSpace(m.search.Value()); term != "" {
		title += " matching " + truncate(term, 20)
	}
	return title
}

// renderRows renders the visible window of items, keeping the selection in
// view.
func (m Model) renderRows(width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	if !m.list.HasData {
		switch {
		case m.list.Loading():
			return bg.Render(m.spinner.View()+" Loading items...", styles.MutedText)
		case m.list.LastError != nil:
			return bg.Render("Could not load items", styles.DangerText)
		case !m.currentSettings().Configured():
			return bg.Render("Press s to configure the server", styles.WarningText)
		}
		return ""
	}
	if len(m.list.Data) == 0 {
		if m.search.Value() != "" {
			return bg.Render("No matching items", styles.MutedText)
		}
		return bg.Render("No items yet. Press a to add a link.", styles.MutedText)
	}

	visible := max(height/rowsPerItem, 1)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(start+visible, len(m.list.Data))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(m.list.Data[i], i == m.selected, width))
	}
	return b.String()
}

func (m Model) renderRow(item linkapi.Item, selected bool, width int) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	marker := "↗"
	if item.IsNote() {
		marker = "✎"
	}
	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.KindColor(item.Kind())))

	titleStyle := styles.Text
	if selected {
		titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText)).Bold(true)
	}

	first := bg.Render(marker, markerStyle) + bg.Space() +
		bg.Render(truncate(singleLine(item.DisplayTitle()), max(width-3, 1)), titleStyle)

	var sub string
	if item.IsNote() {
		sub = singleLine(item.Description)
	} else {
		sub = hostOf(item.URL)
	}
	if added := item.ParsedAddedAt(); !added.IsZero() {
		sub = strings.TrimSpace(added.Format("2006-01-02") + "  " + sub)
	}
	second := bg.Spaces(2) + bg.Render(truncate(sub, max(width-3, 1)), styles.FaintText)

	return bg.FillLine(first, width) + "\n" + bg.FillLine(second, width)
}

// renderDetail shows the selected item's fields. Note bodies are rendered
// as markdown.
func (m Model) renderDetail(width int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	item, ok := m.selectedItem()
	if !ok {
		return bg.Render("Nothing selected", styles.FaintText)
	}

	row := func(label, value string, style lipgloss.Style) string {
		return bg.Render(fmt.Sprintf("%-7s", label), styles.MutedText) + bg.Space() +
			bg.Render(truncate(value, max(width-8, 1)), style)
	}

	lines := []string{
		bg.Render(truncate(item.DisplayTitle(), width), styles.Text.Bold(true)),
		"",
		row("Kind", item.Kind(), lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.KindColor(item.Kind())))),
	}
	if !item.IsNote() {
		lines = append(lines, row("URL", item.URL, styles.InfoText))
	}
	if added := item.ParsedAddedAt(); !added.IsZero() {
		lines = append(lines, row("Added", added.Format("2006-01-02 15:04"), styles.Text))
	} else if item.AddedAt != "" {
		lines = append(lines, row("Added", item.AddedAt, styles.Text))
	}
	lines = append(lines, row("ID", item.ID, styles.FaintText))

	if desc := strings.TrimSpace(item.Description); desc != "" {
		lines = append(lines, "")
		if item.IsNote() {
			lines = append(lines, renderMarkdown(desc, width))
		} else {
			lines = append(lines, styles.Text.Width(width).Render(desc))
		}
	}
	return strings.Join(lines, "\n")
}

type themeSavedMsg struct {
	err error
}

// saveThemeCmd persists the theme, keeping the other preferences.
func saveThemeCmd(path, theme string) tea.Cmd {
	return func() tea.Msg {
		p := prefs.Load(path)
		p.Theme = theme
		return themeSavedMsg{err: prefs.Save(path, p)}
	}
}
