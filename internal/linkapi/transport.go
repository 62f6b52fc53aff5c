package linkapi

import (
	"log"
	"net/http"
	"time"
)

// basicAuthTransport attaches HTTP Basic credentials to every request.
type basicAuthTransport struct {
	username string
	password string
	next     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.username, t.password)
	return t.next.RoundTrip(clone)
}

// loggingTransport records each exchange. Headers are not logged so the
// Authorization value never reaches the log file.
type loggingTransport struct {
	logger *log.Logger
	next   http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.printf("request: %s %s", req.Method, req.URL.Redacted())
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.printf("response: %s %s failed after %s: %v", req.Method, req.URL.Redacted(), time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}
	t.printf("response: %s %s %d in %s", req.Method, req.URL.Redacted(), resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

func (t *loggingTransport) printf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
