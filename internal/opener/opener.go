// Package opener hands links to the platform's default handler.
package opener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/five82/linksaver/internal/linkapi"
)

var (
	// ErrEmptyURL is returned for a blank URL.
	ErrEmptyURL = errors.New("empty url")
	// ErrNote is returned for note items, which have nothing to open.
	ErrNote = errors.New("notes cannot be opened")
)

// Open launches the default handler for url and waits for the launcher to
// exit. Launcher output is discarded.
func Open(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}
	if linkapi.IsNoteURL(url) {
		return ErrNote
	}

	name, args := command(runtime.GOOS, url)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Wait()
}

func command(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}
