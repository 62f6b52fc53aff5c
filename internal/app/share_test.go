package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/five82/linksaver/internal/config"
	"github.com/five82/linksaver/internal/linkapi"
)

func TestShare_SavesTrimmedLink(t *testing.T) {
	var gotURL, gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		_ = r.ParseForm()
		gotURL = r.PostForm.Get("url")
		gotUser, _, _ = r.BasicAuth()
		_ = json.NewEncoder(w).Encode(linkapi.Item{ID: "1", URL: gotURL})
	}))
	t.Cleanup(server.Close)

	settings := config.Settings{BaseURL: server.URL, Username: "ada", Password: "pw"}
	n := Share(context.Background(), settings, "  https://go.dev \n", nil)
	if n.Failed() || n.Text != "Link saved" {
		t.Fatalf("notice = %#v, want Link saved", n)
	}
	if gotURL != "https://go.dev" || gotUser != "ada" {
		t.Fatalf("server saw url=%q user=%q", gotURL, gotUser)
	}
}

func TestShare_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	t.Cleanup(server.Close)

	n := Share(context.Background(), config.Settings{BaseURL: server.URL}, "https://go.dev", nil)
	if n.Text != "Link already exists" {
		t.Fatalf("notice = %q, want Link already exists", n.Text)
	}
}

func TestShare_BlankAndUnconfigured(t *testing.T) {
	called := false
	build := func(config.Settings) (linkapi.ItemService, error) {
		called = true
		return nil, linkapi.ErrNotConfigured
	}
	if n := Share(context.Background(), config.Settings{}, "   ", build); n.Text != "Nothing to share" || called {
		t.Fatalf("blank share = %q (factory called=%v), want Nothing to share without a client", n.Text, called)
	}
	if n := Share(context.Background(), config.Settings{}, "https://go.dev", build); n.Text != "Settings not configured" {
		t.Fatalf("unconfigured share = %q, want Settings not configured", n.Text)
	}
}

func TestBuildClient(t *testing.T) {
	if _, err := BuildClient(config.Settings{BaseURL: "  "}); err != linkapi.ErrNotConfigured {
		t.Fatalf("BuildClient(blank) error = %v, want ErrNotConfigured", err)
	}
	c, err := BuildClient(config.Settings{BaseURL: "links.example.com/api"})
	if err != nil {
		t.Fatalf("BuildClient returned error: %v", err)
	}
	if got := c.BaseURL(); got != "http://links.example.com/api/" {
		t.Fatalf("BaseURL = %q, want http://links.example.com/api/", got)
	}
	svc, err := DefaultClientFactory(config.Settings{})
	if err == nil || svc != nil {
		t.Fatalf("DefaultClientFactory(empty) = %v, %v; want nil service and error", svc, err)
	}
}

func TestResolveLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LINKSAVER_LOG", dir+"/env.log")
	got, err := ResolveLogPath("")
	if err != nil {
		t.Fatalf("ResolveLogPath returned error: %v", err)
	}
	if got != dir+"/env.log" {
		t.Fatalf("ResolveLogPath = %q, want env override", got)
	}
	got, err = ResolveLogPath(dir + "/flag.log")
	if err != nil || got != dir+"/flag.log" {
		t.Fatalf("ResolveLogPath(flag) = %q, %v", got, err)
	}
}
