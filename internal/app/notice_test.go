package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/five82/linksaver/internal/linkapi"
)

func TestDescribe(t *testing.T) {
	serverErr := &linkapi.StatusError{Method: "GET", Path: "/", StatusCode: 500}
	cases := []struct {
		name   string
		op     Op
		err    error
		want   string
		failed bool
	}{
		{"list success is silent", OpList, nil, "", false},
		{"link saved", OpAddLink, nil, "Link saved", false},
		{"note saved", OpAddNote, nil, "Note saved", false},
		{"updated", OpUpdate, nil, "Item updated", false},
		{"deleted", OpDelete, nil, "Item deleted", false},
		{"not configured", OpList, linkapi.ErrNotConfigured, "Settings not configured", true},
		{"wrapped not configured", OpAddLink, fmt.Errorf("build: %w", linkapi.ErrNotConfigured), "Settings not configured", true},
		{"conflict", OpAddLink, &linkapi.StatusError{Method: "POST", Path: "/", StatusCode: 409}, "Link already exists", true},
		{"server error", OpList, serverErr, "Error fetching items: api GET / returned status 500", true},
		{"transport error", OpUpdate, errors.New("dial tcp: refused"), "Error updating item: dial tcp: refused", true},
		{"nothing to share", OpShare, ErrNothingToShare, "Nothing to share", true},
		{"canceled is silent", OpList, fmt.Errorf("execute request: %w", context.Canceled), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Describe(tc.op, tc.err)
			if got.Text != tc.want {
				t.Fatalf("Describe(%v, %v).Text = %q, want %q", tc.op, tc.err, got.Text, tc.want)
			}
			if got.Failed() != tc.failed {
				t.Fatalf("Failed() = %v, want %v", got.Failed(), tc.failed)
			}
		})
	}
}
