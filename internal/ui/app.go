package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/linksaver/internal/app"
	"github.com/five82/linksaver/internal/config"
	"github.com/five82/linksaver/internal/linkapi"
	"github.com/five82/linksaver/internal/opener"
	"github.com/five82/linksaver/internal/prefs"
	"github.com/five82/linksaver/internal/state"
)

// View represents the current active screen.
type View int

const (
	ViewList View = iota
	ViewAddLink
	ViewAddNote
	ViewEdit
	ViewSettings
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Sync     *app.Synchronizer
	Settings *config.Store

	ThemeName string
	PrefsPath string
	LogPath   string
	LogLines  int

	// Open hands a link to the system; nil uses opener.Open.
	Open func(ctx context.Context, url string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	sync      *app.Synchronizer
	settings  *config.Store
	prefsPath string
	logPath   string
	logLines  int
	open      func(ctx context.Context, url string) error

	// UI state
	keys    keyMap
	theme   Theme
	view    View
	width   int
	height  int
	ready   bool
	spinner spinner.Model

	// List state
	list      state.Snapshot[[]linkapi.Item]
	selected  int
	search    textinput.Model
	searching bool

	// Form state
	form    form
	detail  state.Snapshot[linkapi.Item]
	saving  bool
	pending app.Op

	// Request log state
	logViewport viewport.Model
	logState    logState

	// Notice line
	notice    app.Notice
	noticeSeq int

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	logLines := opts.LogLines
	if logLines <= 0 {
		logLines = prefs.Defaults().LogLines
	}

	open := opts.Open
	if open == nil {
		open = opener.Open
	}

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/ "
	search.CharLimit = 200
	if opts.Sync != nil {
		search.SetValue(opts.Sync.Search())
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		ctx:       ctx,
		sync:      opts.Sync,
		settings:  opts.Settings,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		logLines:  logLines,
		open:      open,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		view:      ViewList,
		spinner:   sp,
		search:    search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.sync != nil {
		cmds = append(cmds, mountCmd(m.sync), waitForEvent(m.sync.Events()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.form.setWidth(formBoxWidth(m.width) - 4)
		m.search.Width = max(m.listWidth()-6, 10)
		m.updateLogViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		cmd := m.handleEvent(app.Event(msg))
		return m, tea.Batch(cmd, waitForEvent(m.sync.Events()))

	case noticeExpiredMsg:
		if int(msg) == m.noticeSeq {
			m.notice = app.Notice{}
		}
		return m, nil

	case openSettingsMsg:
		if m.view == ViewList {
			m.enterForm(ViewSettings, newSettingsForm(m.currentSettings()))
		}
		return m, nil

	case settingsSavedMsg:
		m.saving = false
		n := app.Describe(app.OpSaveSettings, msg.err)
		if msg.err == nil {
			m.leaveForm()
		}
		return m, m.showNotice(n)

	case openDoneMsg:
		if msg.err != nil {
			return m, m.showNotice(app.Notice{Text: "Error opening link: " + msg.err.Error(), Err: msg.err})
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			return m, m.showNotice(app.Notice{Text: "Error reading clipboard: " + msg.err.Error(), Err: msg.err})
		}
		if m.isFormView() {
			m.form.paste(msg.text)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			return m, m.showNotice(app.Notice{Text: "Error copying URL: " + msg.err.Error(), Err: msg.err})
		}
		return m, m.showNotice(app.Notice{Text: "URL copied"})

	case deleteConfirmedMsg:
		if m.sync != nil {
			m.sync.Delete(msg.id)
		}
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			return m, m.showNotice(app.Notice{Text: "Error saving theme: " + msg.err.Error(), Err: msg.err})
		}
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	if m.isFormView() {
		return m, m.form.update(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) isFormView() bool {
	switch m.view {
	case ViewAddLink, ViewAddNote, ViewEdit, ViewSettings:
		return true
	}
	return false
}

// handleEvent applies one synchronizer event.
func (m *Model) handleEvent(ev app.Event) tea.Cmd {
	switch ev.Kind {
	case app.EventList:
		if m.view != ViewList {
			return nil
		}
		m.list = ev.List
		m.clampSelection()
		if !ev.List.Loading() && m.sync != nil {
			m.sync.SettleList()
		}
	case app.EventDetail:
		m.detail = ev.Detail
		if ev.Detail.Phase == state.PhaseSuccess && ev.Detail.Trigger == state.TriggerMount && m.view == ViewEdit {
			m.form.fill(ev.Detail.Data)
		}
	case app.EventNotice:
		return m.showNotice(ev.Notice)
	case app.EventMutation:
		if !m.saving || ev.Op != m.pending {
			return nil
		}
		m.saving = false
		if ev.Err == nil {
			m.leaveForm()
		}
	}
	return nil
}

func (m *Model) showNotice(n app.Notice) tea.Cmd {
	if n.Empty() {
		return nil
	}
	m.notice = n
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(NoticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg(seq)
	})
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	switch m.view {
	case ViewList:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleListKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleFormKey(msg)
	}
}

// handleFormKey processes input on the add, edit, and settings screens.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveForm()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form.prev()
		return m, nil
	case key.Matches(msg, m.keys.Paste):
		return m, readClipboardCmd()
	case key.Matches(msg, m.keys.Save):
		return m, m.submitForm()
	}
	return m, m.form.update(msg)
}

// submitForm starts the save for the active form. Nothing happens while a
// save is running or required fields are blank.
func (m *Model) submitForm() tea.Cmd {
	if m.saving || !m.form.canSave() {
		return nil
	}
	if m.form.kind != formSettings && m.sync == nil {
		return nil
	}
	switch m.form.kind {
	case formSettings:
		if m.settings == nil {
			return nil
		}
		m.saving = true
		store, next := m.settings, m.form.settings()
		return func() tea.Msg {
			return settingsSavedMsg{err: store.Save(next)}
		}
	case formAddLink:
		m.startMutation(app.OpAddLink)
		m.sync.AddLink(strings.TrimSpace(m.form.value(0)))
	case formAddNote:
		m.startMutation(app.OpAddNote)
		m.sync.AddNote(strings.TrimSpace(m.form.value(0)), m.form.value(1))
	case formEdit:
		m.startMutation(app.OpUpdate)
		m.sync.Update(m.form.itemID, m.form.value(1), m.form.value(2))
	}
	return nil
}

func (m *Model) startMutation(op app.Op) {
	m.saving = true
	m.pending = op
}

func (m *Model) enterForm(view View, f form) {
	f.setWidth(formBoxWidth(m.width) - 4)
	m.form = f
	m.leaveList(view)
	m.saving = false
}

// leaveList switches away from the list. The list's data is dropped and
// fetched again when the list comes back.
func (m *Model) leaveList(view View) {
	if m.view == ViewList && m.sync != nil {
		m.sync.Unmount()
	}
	m.list = state.Snapshot[[]linkapi.Item]{}
	m.view = view
}

// showList mounts the list, which starts a fresh fetch.
func (m *Model) showList() {
	m.view = ViewList
	if m.sync != nil {
		m.sync.Mount()
		m.list = m.sync.List()
	}
}

// leaveForm returns to the list. The edit screen's detail state is dropped.
func (m *Model) leaveForm() {
	if m.view == ViewEdit && m.sync != nil {
		m.sync.CloseDetail()
		m.detail = state.Snapshot[linkapi.Item]{}
	}
	m.saving = false
	m.form = form{}
	m.showList()
}

func (m Model) currentSettings() config.Settings {
	if m.settings != nil {
		return m.settings.Current()
	}
	if m.sync != nil {
		return m.sync.Settings()
	}
	return config.Settings{}
}

// renderMain renders header, command bar, content, and notice line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	return b.String()
}

// renderContent renders the main content area for the current view.
func (m Model) renderContent() string {
	height := max(m.height-chromeHeight, 3)
	switch m.view {
	case ViewList:
		return m.renderList(height)
	case ViewLogs:
		return m.renderLogs(height)
	default:
		return m.renderForm(m.form, height)
	}
}

// Messages

type eventMsg app.Event

type noticeExpiredMsg int

type openSettingsMsg struct{}

type settingsSavedMsg struct {
	err error
}

type openDoneMsg struct {
	err error
}

type deleteConfirmedMsg struct {
	id string
}

// Commands

func waitForEvent(events <-chan app.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

// mountCmd mounts the list, or asks for settings when there are none.
func mountCmd(s *app.Synchronizer) tea.Cmd {
	return func() tea.Msg {
		s.Mount()
		if !s.Settings().Configured() {
			return openSettingsMsg{}
		}
		return nil
	}
}

func (m Model) openCmd(link string) tea.Cmd {
	ctx, open := m.ctx, m.open
	return func() tea.Msg {
		return openDoneMsg{err: open(ctx, link)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
