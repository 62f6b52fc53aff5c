package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileIsNotConfigured(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s != (Settings{}) {
		t.Fatalf("Load = %#v, want zero settings", s)
	}
	if s.Configured() {
		t.Fatalf("Configured() = true, want false for missing file")
	}
}

func TestLoad_ParsesAndTrimsBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  https://links.example.com/  "
username = "ada"
password = " secret "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.BaseURL != "https://links.example.com/" {
		t.Fatalf("BaseURL = %q, want %q", s.BaseURL, "https://links.example.com/")
	}
	if s.Username != "ada" {
		t.Fatalf("Username = %q, want %q", s.Username, "ada")
	}
	if s.Password != " secret " {
		t.Fatalf("Password = %q, want it untouched", s.Password)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(`base_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse settings") {
		t.Fatalf("Load error = %q, want it to mention parse settings", err.Error())
	}
}

func TestSave_RoundTripsAllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	want := Settings{BaseURL: "http://host:8080", Username: "u", Password: "p@ss=word"}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %#v, want %#v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != settingsFileMode {
		t.Fatalf("file mode = %o, want %o", perm, settingsFileMode)
	}
}

func TestSave_OverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	if err := Save(path, Settings{BaseURL: "http://one"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := Save(path, Settings{BaseURL: "http://two", Username: "x"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.BaseURL != "http://two" || got.Username != "x" || got.Password != "" {
		t.Fatalf("Load = %#v, want second save only", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want only settings.toml", len(entries))
	}
}

func TestSave_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := Save(path, Settings{BaseURL: "http://keep"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// A read-only directory makes the temp file creation fail.
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	if os.Geteuid() == 0 {
		t.Skip("running as root; permissions are not enforced")
	}

	if err := Save(path, Settings{BaseURL: "http://lost"}); err == nil {
		t.Fatalf("Save returned nil error, want write error")
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.BaseURL != "http://keep" {
		t.Fatalf("BaseURL = %q, want previous value %q", got.BaseURL, "http://keep")
	}
}

func TestResolvePath_UsesEnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(settingsPathEnv, custom)

	got, err := ResolvePath("")
	if err != nil {
		t.Fatalf("ResolvePath returned error: %v", err)
	}
	if got != custom {
		t.Fatalf("ResolvePath = %q, want %q", got, custom)
	}
}

func TestResolvePath_DefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(settingsPathEnv, "")

	got, err := ResolvePath("  ")
	if err != nil {
		t.Fatalf("ResolvePath returned error: %v", err)
	}
	want := filepath.Join(home, ".config", "linksaver", "settings.toml")
	if got != want {
		t.Fatalf("ResolvePath = %q, want %q", got, want)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}
