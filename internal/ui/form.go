package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linksaver/internal/config"
	"github.com/five82/linksaver/internal/linkapi"
)

type formKind int

const (
	formAddLink formKind = iota
	formAddNote
	formEdit
	formSettings
)

// formField is one labeled input. Exactly one of input or area is used.
type formField struct {
	label    string
	input    textinput.Model
	area     textarea.Model
	multi    bool
	readOnly bool
	required bool
}

func (f formField) value() string {
	if f.multi {
		return f.area.Value()
	}
	return f.input.Value()
}

// form backs the add link, add note, edit, and settings screens.
type form struct {
	kind   formKind
	title  string
	fields []formField
	focus  int
	itemID string
	// loaded is set once the edit form has been filled from the server.
	loaded bool
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.SetValue(value)
	return ti
}

func newArea(placeholder, value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.SetValue(value)
	return ta
}

func newAddLinkForm(initial string) form {
	f := form{
		kind:  formAddLink,
		title: "Add Link",
		fields: []formField{
			{label: "URL", input: newInput("https://", initial), required: true},
		},
	}
	f.applyFocus()
	return f
}

func newAddNoteForm() form {
	f := form{
		kind:  formAddNote,
		title: "Add Note",
		fields: []formField{
			{label: "Title", input: newInput("Title", ""), required: true},
			{label: "Text", area: newArea("Write the note...", ""), multi: true, required: true},
		},
	}
	f.applyFocus()
	return f
}

// newEditForm starts from the list copy of item; fill replaces the values
// once the server copy arrives.
func newEditForm(item linkapi.Item) form {
	f := form{
		kind:   formEdit,
		title:  ternary(item.IsNote(), "Edit Note", "Edit Link"),
		itemID: item.ID,
		fields: []formField{
			{label: "URL", input: newInput("", item.URL), readOnly: true},
			{label: "Title", input: newInput("Title", item.Title)},
			{label: "Description", area: newArea("Description", item.Description), multi: true},
		},
		focus: 1,
	}
	f.applyFocus()
	return f
}

func (f *form) fill(item linkapi.Item) {
	if f.kind != formEdit || f.loaded || item.ID != f.itemID {
		return
	}
	f.fields[0].input.SetValue(item.URL)
	f.fields[1].input.SetValue(item.Title)
	f.fields[2].area.SetValue(item.Description)
	f.loaded = true
}

func newSettingsForm(s config.Settings) form {
	password := newInput("password", s.Password)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	f := form{
		kind:  formSettings,
		title: "Settings",
		fields: []formField{
			{label: "Base URL", input: newInput("https://links.example.com/api/", s.BaseURL)},
			{label: "Username", input: newInput("username", s.Username)},
			{label: "Password", input: password},
		},
	}
	f.applyFocus()
	return f
}

func (f form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].value()
}

// canSave reports whether every required field is non-blank.
func (f form) canSave() bool {
	for _, field := range f.fields {
		if field.required && strings.TrimSpace(field.value()) == "" {
			return false
		}
	}
	return true
}

func (f form) settings() config.Settings {
	return config.Settings{
		BaseURL:  strings.TrimSpace(f.value(0)),
		Username: f.value(1),
		Password: f.value(2),
	}
}

func (f *form) next() {
	f.move(1)
}

func (f *form) prev() {
	f.move(-1)
}

func (f *form) move(step int) {
	n := len(f.fields)
	for i := 0; i < n; i++ {
		f.focus = (f.focus + step + n) % n
		if !f.fields[f.focus].readOnly {
			break
		}
	}
	f.applyFocus()
}

func (f *form) applyFocus() {
	for i := range f.fields {
		field := &f.fields[i]
		focused := i == f.focus && !field.readOnly
		switch {
		case field.multi && focused:
			field.area.Focus()
		case field.multi:
			field.area.Blur()
		case focused:
			field.input.Focus()
		default:
			field.input.Blur()
		}
	}
}

// paste inserts text into the focused field.
func (f *form) paste(text string) {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return
	}
	field := &f.fields[f.focus]
	if field.readOnly {
		return
	}
	if field.multi {
		field.area.InsertString(text)
		return
	}
	field.input.SetValue(field.input.Value() + strings.TrimSpace(text))
	field.input.CursorEnd()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	field := &f.fields[f.focus]
	if field.readOnly {
		return nil
	}
	var cmd tea.Cmd
	if field.multi {
		field.area, cmd = field.area.Update(msg)
	} else {
		field.input, cmd = field.input.Update(msg)
	}
	return cmd
}

func formBoxWidth(total int) int {
	return max(min(total, 90), 24)
}

func (f *form) setWidth(width int) {
	width = max(width, 20)
	for i := range f.fields {
		if f.fields[i].multi {
			f.fields[i].area.SetWidth(width)
			continue
		}
		f.fields[i].input.Width = width
	}
}

type clipboardMsg struct {
	text string
	err  error
}

func readClipboardCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := clipboard.ReadAll()
		return clipboardMsg{text: text, err: err}
	}
}

type copiedMsg struct {
	err error
}

func writeClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

// renderForm draws the active form inside a titled box.
func (m Model) renderForm(f form, height int) string {
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	width := formBoxWidth(m.width)
	inner := width - 4

	var b strings.Builder
	for i, field := range f.fields {
		label := field.label
		if field.required {
			label += " *"
		}
		labelStyle := styles.MutedText
		if i == f.focus && !field.readOnly {
			labelStyle = styles.AccentText.Bold(true)
		}
		b.WriteString(bg.Render(label, labelStyle))
		b.WriteString("\n")
		switch {
		case field.readOnly:
			b.WriteString(bg.Render(truncate(field.value(), inner), styles.FaintText))
		case field.multi:
			b.WriteString(field.area.View())
		default:
			b.WriteString(field.input.View())
		}
		b.WriteString("\n\n")
	}

	if m.saving {
		b.WriteString(bg.Render(m.spinner.View()+" Saving...", styles.WarningText))
	} else if f.kind == formEdit && !f.loaded && m.detail.Loading() {
		b.WriteString(bg.Render(m.spinner.View()+" Loading item...", styles.MutedText))
	} else {
		saveStyle := styles.SuccessText
		saveLabel := "ctrl+s Save"
		if !f.canSave() {
			saveStyle = styles.FaintText
			saveLabel = "ctrl+s Save (fill required fields)"
		}
		b.WriteString(bg.Render(saveLabel, saveStyle))
	}

	box := m.renderTitledBox(f.title, strings.TrimRight(b.String(), "\n"), width, height, true)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
