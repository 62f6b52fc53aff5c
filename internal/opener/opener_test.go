package opener

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestOpen_RejectsBlankAndNotes(t *testing.T) {
	ctx := context.Background()
	if err := Open(ctx, "  "); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("Open(blank) error = %v, want ErrEmptyURL", err)
	}
	if err := Open(ctx, "note:groceries"); !errors.Is(err, ErrNote) {
		t.Fatalf("Open(note) error = %v, want ErrNote", err)
	}
}

func TestCommand(t *testing.T) {
	cases := []struct {
		goos string
		name string
		args []string
	}{
		{"darwin", "open", []string{"https://go.dev"}},
		{"windows", "cmd", []string{"/c", "start", "", "https://go.dev"}},
		{"linux", "xdg-open", []string{"https://go.dev"}},
		{"freebsd", "xdg-open", []string{"https://go.dev"}},
	}
	for _, tc := range cases {
		name, args := command(tc.goos, "https://go.dev")
		if name != tc.name || !reflect.DeepEqual(args, tc.args) {
			t.Fatalf("command(%q) = %q %v, want %q %v", tc.goos, name, args, tc.name, tc.args)
		}
	}
}
