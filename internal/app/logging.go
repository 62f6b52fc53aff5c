package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/linksaver/internal/config"
)

const (
	defaultLogPath = "~/.local/state/linksaver/linksaver.log"
	envLogPath     = "LINKSAVER_LOG"
	logPrefix      = "linksaver"
)

// ResolveLogPath returns the request log location: path if set, then
// $LINKSAVER_LOG, then the default under ~/.local/state.
func ResolveLogPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(envLogPath)
	}
	if strings.TrimSpace(path) == "" {
		path = defaultLogPath
	}
	return config.ExpandPath(path)
}

// SetupLogging sends the standard logger to the log file so the terminal
// stays free for the UI. The caller closes the returned file.
func SetupLogging(path string) (io.Closer, string, error) {
	resolved, err := ResolveLogPath(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(resolved, logPrefix)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}
	return f, resolved, nil
}
