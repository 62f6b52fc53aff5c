package linkapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotConfigured is returned when no base URL has been set. No
	// request is attempted.
	ErrNotConfigured = errors.New("settings not configured")

	// ErrConflict matches a 409 response: the item already exists.
	ErrConflict = errors.New("item already exists")
)

// StatusError is a non-2xx response from the server.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is(err, ErrConflict) match 409 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrConflict && e.StatusCode == http.StatusConflict
}

// ErrorKind classifies an error for presentation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotConfigured
	KindConflict
	KindRequestFailed
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotConfigured:
		return "not_configured"
	case KindConflict:
		return "conflict"
	case KindCanceled:
		return "canceled"
	default:
		return "request_failed"
	}
}

// Classify maps err onto the error taxonomy. Canceled contexts are reported
// separately so superseded requests can be dropped silently.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotConfigured):
		return KindNotConfigured
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindRequestFailed
	}
}
