package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings is the server connection configuration.
type Settings struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

const (
	defaultSettingsPath = "~/.config/linksaver/settings.toml"
	settingsPathEnv     = "LINKSAVER_CONFIG"
	settingsFileMode    = 0o600
)

// Configured reports whether a base URL has been set.
func (s Settings) Configured() bool {
	return strings.TrimSpace(s.BaseURL) != ""
}

// DefaultPath returns the settings path used when none is given.
func DefaultPath() string {
	if env := strings.TrimSpace(os.Getenv(settingsPathEnv)); env != "" {
		return env
	}
	return defaultSettingsPath
}

// Load reads settings from path. A missing file yields zero Settings.
func Load(path string) (Settings, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Settings{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := toml.Unmarshal(bytes, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	return s, nil
}

// Save replaces all three fields on disk. The write goes through a temp file
// and a rename, so a failed save leaves the previous file intact.
func Save(path string, s Settings) error {
	resolved, err := ResolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	s.BaseURL = strings.TrimSpace(s.BaseURL)
	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := atomicWriteFile(dir, resolved, bytes, settingsFileMode); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func atomicWriteFile(dir, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ResolvePath expands path, falling back to DefaultPath when blank.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(DefaultPath())
	}
	return ExpandPath(path)
}

// ExpandPath expands a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
