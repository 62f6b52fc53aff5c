// Package prefs handles linksaver UI preferences.
// Preferences are stored in ~/.config/linksaver/prefs.toml, apart from the
// connection settings.
package prefs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/linksaver/internal/config"
)

// Prefs holds user preferences for the terminal UI.
type Prefs struct {
	Theme    string `toml:"theme"`
	LogLines int    `toml:"log_lines"`
}

const (
	defaultPrefsPath = "~/.config/linksaver/prefs.toml"
	envPrefsPath     = "LINKSAVER_PREFS"
	defaultTheme     = "Nightfox"
	defaultLogLines  = 400
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, LogLines: defaultLogLines}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, falling back to defaults when the file
// is missing or unreadable. Preferences are cosmetic, so problems are logged
// rather than returned.
func Load(path string) Prefs {
	prefs := Defaults()

	resolved, err := ResolvePath(path)
	if err != nil {
		log.Printf("prefs: %v", err)
		return prefs
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("prefs: read %s: %v", resolved, err)
		}
		return prefs
	}
	if err := toml.Unmarshal(b, &prefs); err != nil {
		log.Printf("prefs: parse %s: %v", resolved, err)
		return Defaults()
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.LogLines <= 0 {
		prefs.LogLines = defaultLogLines
	}
	return prefs
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	b, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, b, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// ResolvePath returns path if set, then $LINKSAVER_PREFS, then the default.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(envPrefsPath)
	}
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
