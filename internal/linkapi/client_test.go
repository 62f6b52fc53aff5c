package linkapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordedRequest struct {
	Method      string
	Path        string
	RawPath     string
	Query       url.Values
	Form        url.Values
	ContentType string
	Accept      string
	UserAgent   string
	User        string
	Pass        string
	HasAuth     bool
}

type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *recorder) add(req *http.Request) {
	rec := recordedRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		RawPath:     req.URL.EscapedPath(),
		Query:       req.URL.Query(),
		ContentType: req.Header.Get("Content-Type"),
		Accept:      req.Header.Get("Accept"),
		UserAgent:   req.Header.Get("User-Agent"),
	}
	rec.User, rec.Pass, rec.HasAuth = req.BasicAuth()
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		rec.Form, _ = url.ParseQuery(string(body))
	}
	r.mu.Lock()
	r.reqs = append(r.reqs, rec)
	r.mu.Unlock()
}

func (r *recorder) last(t *testing.T) recordedRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reqs) == 0 {
		t.Fatalf("no requests recorded")
	}
	return r.reqs[len(r.reqs)-1]
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(baseURL, Options{
		Username: "ada",
		Password: "s3cret",
		Logger:   log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_BlankIsNotConfigured(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		_, err := parseBaseURL(raw)
		if !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("parseBaseURL(%q) error = %v, want ErrNotConfigured", raw, err)
		}
	}
	if _, err := NewClient("", Options{Username: "u", Password: "p"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("NewClient(\"\") error = %v, want ErrNotConfigured", err)
	}
}

func TestParseBaseURL_NormalizesTrailingSlash(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://host", "http://host/"},
		{"http://host/", "http://host/"},
		{"http://host//", "http://host/"},
		{"  https://host/links  ", "https://host/links/"},
		{"https://host/links/?x=1#frag", "https://host/links/"},
		{"host:8080/app", "http://host:8080/app/"},
	}
	for _, tc := range cases {
		u, err := parseBaseURL(tc.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q) returned error: %v", tc.in, err)
		}
		if got := u.String(); got != tc.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http:///only/path"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_TrailingSlashVariantsHitSamePath(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		_ = json.NewEncoder(w).Encode(Item{ID: "7"})
	}))
	t.Cleanup(server.Close)

	var paths []string
	for _, base := range []string{server.URL + "/links", server.URL + "/links/"} {
		c := newTestClient(t, base)
		if _, err := c.Get(context.Background(), "7"); err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		paths = append(paths, rec.last(t).Path)
	}
	if paths[0] != paths[1] || paths[0] != "/links/7" {
		t.Fatalf("paths = %v, want both /links/7", paths)
	}
}

func TestClient_ListSearchParameter(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Item{{ID: "1", URL: "https://example.com", Title: "Example"}})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx := context.Background()

	items, err := c.List(ctx, "foo")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "1" {
		t.Fatalf("List = %#v, want one item id=1", items)
	}
	got := rec.last(t)
	if got.Method != http.MethodGet || got.Path != "/" || got.Query.Get("s") != "foo" {
		t.Fatalf("request = %s %s?%s, want GET /?s=foo", got.Method, got.Path, got.Query.Encode())
	}

	for _, blank := range []string{"", "   "} {
		if _, err := c.List(ctx, blank); err != nil {
			t.Fatalf("List(%q) returned error: %v", blank, err)
		}
		got = rec.last(t)
		if _, ok := got.Query["s"]; ok || got.Path != "/" {
			t.Fatalf("List(%q) request = %s?%s, want / without s", blank, got.Path, got.Query.Encode())
		}
	}
}

func TestClient_SendsAuthHeadersAndForms(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(Item{ID: "42", URL: "https://go.dev", Title: "Go"})
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL+"/")
	ctx := context.Background()

	item, err := c.AddLink(ctx, "https://go.dev")
	if err != nil {
		t.Fatalf("AddLink returned error: %v", err)
	}
	if item.ID != "42" {
		t.Fatalf("AddLink item = %#v, want id 42", item)
	}
	got := rec.last(t)
	if got.Method != http.MethodPost || got.Path != "/" {
		t.Fatalf("AddLink request = %s %s, want POST /", got.Method, got.Path)
	}
	if got.Form.Get("url") != "https://go.dev" {
		t.Fatalf("AddLink form = %v, want url field", got.Form)
	}
	if got.ContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("Content-Type = %q, want form encoding", got.ContentType)
	}
	if !got.HasAuth || got.User != "ada" || got.Pass != "s3cret" {
		t.Fatalf("basic auth = %q/%q (present=%v), want ada/s3cret", got.User, got.Pass, got.HasAuth)
	}
	if got.Accept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", got.Accept)
	}
	if !strings.HasPrefix(got.UserAgent, "linksaver/") {
		t.Fatalf("User-Agent = %q, want linksaver/*", got.UserAgent)
	}

	if _, err := c.AddNote(ctx, "Groceries", "milk\neggs"); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}
	got = rec.last(t)
	if got.Form.Get("note-title") != "Groceries" || got.Form.Get("note-text") != "milk\neggs" {
		t.Fatalf("AddNote form = %v, want note-title and note-text", got.Form)
	}

	if _, err := c.Update(ctx, "42", "New title", "New description"); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got = rec.last(t)
	if got.Method != http.MethodPatch || got.Path != "/42" {
		t.Fatalf("Update request = %s %s, want PATCH /42", got.Method, got.Path)
	}
	if got.Form.Get("title") != "New title" || got.Form.Get("description") != "New description" {
		t.Fatalf("Update form = %v, want title and description", got.Form)
	}

	if err := c.Delete(ctx, "42"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	got = rec.last(t)
	if got.Method != http.MethodDelete || got.Path != "/42" || !got.HasAuth {
		t.Fatalf("Delete request = %s %s auth=%v, want authenticated DELETE /42", got.Method, got.Path, got.HasAuth)
	}
}

func TestClient_EscapesItemIDAsOneSegment(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		_ = json.NewEncoder(w).Encode(Item{ID: "a/b c"})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL+"/base")
	if _, err := c.Get(context.Background(), "a/b c"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got := rec.last(t).RawPath; got != "/base/a%2Fb%20c" {
		t.Fatalf("escaped path = %q, want /base/a%%2Fb%%20c", got)
	}
}

func TestClient_EmptyIDRejectedWithoutRequest(t *testing.T) {
	c := newTestClient(t, "127.0.0.1:1")
	ctx := context.Background()
	if _, err := c.Get(ctx, " "); err == nil {
		t.Fatalf("Get returned nil error, want item id required")
	}
	if _, err := c.Update(ctx, "", "t", "d"); err == nil {
		t.Fatalf("Update returned nil error, want item id required")
	}
	if err := c.Delete(ctx, ""); err == nil {
		t.Fatalf("Delete returned nil error, want item id required")
	}
}

func TestClient_ConflictAndGenericErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			http.Error(w, "duplicate", http.StatusConflict)
		case r.URL.Path == "/broken":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)
	ctx := context.Background()

	_, err := c.AddLink(ctx, "https://example.com")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("AddLink error = %v, want ErrConflict", err)
	}
	if Classify(err) != KindConflict {
		t.Fatalf("Classify = %v, want conflict", Classify(err))
	}

	_, err = c.List(ctx, "")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("List error = %v, want status 500 error", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("500 should not match ErrConflict")
	}
	if Classify(err) != KindRequestFailed {
		t.Fatalf("Classify = %v, want request_failed", Classify(err))
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Body != "nope" {
		t.Fatalf("StatusError = %#v, want body excerpt nope", statusErr)
	}

	_, err = c.Get(ctx, "broken")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Get error = %v, want decode response error", err)
	}
}

func TestClient_CanceledContextClassifiedAsCanceled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.List(ctx, "")
	if Classify(err) != KindCanceled {
		t.Fatalf("Classify(%v) = %v, want canceled", err, Classify(err))
	}
}

func TestClient_LogsWithoutCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Item{})
	}))
	t.Cleanup(server.Close)

	var buf strings.Builder
	var mu sync.Mutex
	c, err := NewClient(server.URL, Options{
		Username: "ada",
		Password: "s3cret",
		Logger:   log.New(&lockedWriter{w: &buf, mu: &mu}, "", 0),
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background(), "x"); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	if !strings.Contains(out, "request: GET") || !strings.Contains(out, "response: GET") {
		t.Fatalf("log output = %q, want request and response lines", out)
	}
	if strings.Contains(out, "s3cret") || strings.Contains(out, "Authorization") {
		t.Fatalf("log output leaks credentials: %q", out)
	}
}

type lockedWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func TestClient_CreateAcceptsListAndEmptyBodies(t *testing.T) {
	t.Parallel()

	var body string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	setBody := func(v any) {
		t.Helper()
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		mu.Lock()
		body = string(b)
		mu.Unlock()
	}

	c := newTestClient(t, server.URL+"/")
	ctx := context.Background()

	setBody([]Item{
		{ID: "1", URL: "https://go.dev", Title: "Go"},
		{ID: "2", URL: "https://example.com", Title: "Example"},
	})
	item, err := c.AddLink(ctx, "https://go.dev")
	if err != nil {
		t.Fatalf("AddLink with list body returned error: %v", err)
	}
	if item.ID != "1" {
		t.Fatalf("AddLink item = %q, want 1", item.ID)
	}

	setBody([]Item{
		{ID: "1", URL: "https://go.dev"},
		{ID: "3", URL: NotePrefix + "milk", Title: "Groceries"},
	})
	item, err = c.AddNote(ctx, "Groceries", "milk")
	if err != nil {
		t.Fatalf("AddNote with list body returned error: %v", err)
	}
	if item.ID != "3" {
		t.Fatalf("AddNote item = %q, want 3", item.ID)
	}

	mu.Lock()
	body = ""
	mu.Unlock()
	item, err = c.AddLink(ctx, "https://empty.example")
	if err != nil {
		t.Fatalf("AddLink with empty body returned error: %v", err)
	}
	if item.ID != "" {
		t.Fatalf("AddLink item = %q, want empty", item.ID)
	}
}
