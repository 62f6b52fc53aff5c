package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached per wrap width. A fixed dark style is used
	// because every theme has a dark background, and WithAutoStyle can
	// block on terminal queries.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders note text for the detail pane. On any renderer
// error the plain text is returned.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	mdRendererMu.Lock()
	r := mdRenderers[width]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := styles.DarkStyleConfig
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[width]; existing != nil {
			r = existing
		} else {
			mdRenderers[width] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

