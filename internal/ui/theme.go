package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar, notice line
	SurfaceAlt string // Panes
	FocusBg    string // Focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// KindColors color item kinds (link, note) and request log lines
	// (request, response, failure).
	KindColors map[string]string
}

// KindColor returns the color for kind, falling back to Text.
func (t Theme) KindColor(kind string) string {
	if c, ok := t.KindColors[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return c
	}
	return t.Text
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
}

// WithBackground returns a copy of Styles with every style on bgColor, so
// adjacent segments do not leave gaps in the background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Background:  s.Background.Background(bg),
		Surface:     s.Surface.Background(bg),
		SurfaceAlt:  s.SurfaceAlt.Background(bg),
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		Header:      s.Header.Background(bg),
		Logo:        s.Logo.Background(bg),
		Selected:    s.Selected.Background(bg),
	}
}

var themes = map[string]Theme{
	"Nightfox": nightfox.theme("Nightfox"),
	"Kanagawa": kanagawa.theme("Kanagawa"),
}

var themeOrder = []string{"Nightfox", "Kanagawa"}

// GetTheme returns a theme by name, defaulting to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["Nightfox"]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// palette is the handful of colors a theme is built from. Borders, the
// selection and kind colors are derived from it.
type palette struct {
	bg0, bg1, bg2, bg3, bg4 string
	sel                     string
	fg, comment, dim        string
	blue, violet, green     string
	yellow, red, cyan       string
}

func (p palette) theme(name string) Theme {
	return Theme{
		Name:          name,
		Background:    p.bg0,
		Surface:       p.bg1,
		SurfaceAlt:    p.bg2,
		FocusBg:       p.bg3,
		SelectionBg:   p.sel,
		SelectionText: p.fg,
		Border:        p.bg4,
		BorderMuted:   p.bg2,
		BorderFocus:   p.blue,
		Text:          p.fg,
		Muted:         p.comment,
		Faint:         p.dim,
		Accent:        p.blue,
		Success:       p.green,
		Warning:       p.yellow,
		Danger:        p.red,
		Info:          p.cyan,
		KindColors: map[string]string{
			"link":     p.blue,
			"note":     p.violet,
			"request":  p.dim,
			"response": p.green,
			"failure":  p.red,
		},
	}
}

// https://github.com/EdenEast/nightfox.nvim
var nightfox = palette{
	bg0: "#131a24", bg1: "#192330", bg2: "#212e3f", bg3: "#29394f", bg4: "#39506d", sel: "#2b3b51",
	fg: "#cdcecf", comment: "#738091", dim: "#71839b",
	blue: "#719cd6", violet: "#9d79d6", green: "#81b29a",
	yellow: "#dbc074", red: "#c94f6d", cyan: "#63cdcf",
}

// https://github.com/rebelot/kanagawa.nvim
var kanagawa = palette{
	bg0: "#16161D", bg1: "#1F1F28", bg2: "#2A2A37", bg3: "#2A2A37", bg4: "#54546D", sel: "#2D4F67",
	fg: "#DCD7BA", comment: "#C8C093", dim: "#727169",
	blue: "#7E9CD8", violet: "#957FB8", green: "#98BB6C",
	yellow: "#E6C384", red: "#E46876", cyan: "#7FB4CA",
}
