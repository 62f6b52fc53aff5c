package linkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// ItemService is the set of remote item operations. *Client implements it;
// tests substitute fakes.
type ItemService interface {
	List(ctx context.Context, search string) ([]Item, error)
	AddLink(ctx context.Context, link string) (Item, error)
	AddNote(ctx context.Context, title, text string) (Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Update(ctx context.Context, id, title, description string) (Item, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Client implements ItemService at compile time.
var _ ItemService = (*Client)(nil)

// Client talks to the link saving service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Options configure NewClient.
type Options struct {
	Username string
	Password string

	// Transport is the base RoundTripper; nil uses http.DefaultTransport.
	Transport http.RoundTripper
	// Logger receives one line per request and response; nil uses the
	// standard logger.
	Logger *log.Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

const (
	// Version is reported in the User-Agent header.
	Version = "0.1"

	defaultUserAgent = "linksaver/" + Version
	maxErrorBody     = 200
)

// NewClient builds a Client bound to baseURL. A blank baseURL returns
// ErrNotConfigured.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	transport = &loggingTransport{logger: opts.Logger, next: transport}
	transport = &basicAuthTransport{username: opts.Username, password: opts.Password, next: transport}

	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Transport: transport},
		userAgent: ua,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// List returns the saved items. A non-blank search term is passed to the
// server as the s query parameter.
func (c *Client) List(ctx context.Context, search string) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{}
	if strings.TrimSpace(search) != "" {
		rel.RawQuery = url.Values{"s": {search}}.Encode()
	}
	var items []Item
	if err := c.do(ctx, http.MethodGet, rel, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddLink saves a new link and returns the created item.
func (c *Client) AddLink(ctx context.Context, link string) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	form := url.Values{}
	form.Set("url", link)
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, &url.URL{}, form, &raw); err != nil {
		return Item{}, err
	}
	return decodeCreated(raw, func(it Item) bool { return it.URL == link })
}

// AddNote saves a new note and returns the created item.
func (c *Client) AddNote(ctx context.Context, title, text string) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	form := url.Values{}
	form.Set("note-title", title)
	form.Set("note-text", text)
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, &url.URL{}, form, &raw); err != nil {
		return Item{}, err
	}
	return decodeCreated(raw, func(it Item) bool { return it.IsNote() && it.Title == title })
}

// decodeCreated reads a create response. Servers answer with the new item,
// with the whole item list, or with nothing. From a list the last item
// matching created is returned, else the last item.
func decodeCreated(raw json.RawMessage, created func(Item) bool) (Item, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Item{}, nil
	}
	if body[0] != '[' {
		var item Item
		if err := json.Unmarshal(body, &item); err != nil {
			return Item{}, fmt.Errorf("decode response: %w", err)
		}
		return item, nil
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return Item{}, fmt.Errorf("decode response: %w", err)
	}
	for i := len(items) - 1; i >= 0; i-- {
		if created(items[i]) {
			return items[i], nil
		}
	}
	if len(items) == 0 {
		return Item{}, nil
	}
	return items[len(items)-1], nil
}

// Get fetches a single item.
func (c *Client) Get(ctx context.Context, id string) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	rel, err := itemRef(id)
	if err != nil {
		return Item{}, err
	}
	var item Item
	if err := c.do(ctx, http.MethodGet, rel, nil, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Update changes an item's title and description and returns the result.
func (c *Client) Update(ctx context.Context, id, title, description string) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	rel, err := itemRef(id)
	if err != nil {
		return Item{}, err
	}
	form := url.Values{}
	form.Set("title", title)
	form.Set("description", description)
	var item Item
	if err := c.do(ctx, http.MethodPatch, rel, form, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := itemRef(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, form url.Values, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{
			Method:     method,
			Path:       reqURL.EscapedPath(),
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
		}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody+1))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(string(b)), " ")
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}

// itemRef builds the relative reference for one item. The id is escaped as a
// single path segment.
func itemRef(id string) (*url.URL, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("item id required")
	}
	return &url.URL{Path: id, RawPath: url.PathEscape(id)}, nil
}

// parseBaseURL normalizes the configured base URL so that it ends with
// exactly one slash. Item paths are resolved relative to it.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrNotConfigured
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
