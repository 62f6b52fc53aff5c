package linkapi

import (
	"strings"
	"time"
)

// NotePrefix marks an item URL as a plain-text note rather than a link.
const NotePrefix = "note:"

const serverTimestampLayout = "2006-01-02 15:04:05"

// Item is a saved link or note as returned by the server.
type Item struct {
	ID          string `json:"ID"`
	URL         string `json:"URL"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	AddedAt     string `json:"AddedAt"`
}

// IsNote reports whether the item is a note. Notes are links whose URL uses
// the reserved note: prefix; the server has no separate type for them.
func (i Item) IsNote() bool {
	return IsNoteURL(i.URL)
}

// IsNoteURL reports whether url carries the note prefix.
func IsNoteURL(url string) bool {
	return strings.HasPrefix(url, NotePrefix)
}

// Kind returns "note" or "link".
func (i Item) Kind() string {
	if i.IsNote() {
		return "note"
	}
	return "link"
}

// ParsedAddedAt returns AddedAt as time.Time, or the zero time when it
// cannot be parsed.
func (i Item) ParsedAddedAt() time.Time {
	return parseTime(i.AddedAt)
}

// DisplayTitle falls back to the URL when the item has no title.
func (i Item) DisplayTitle() string {
	if t := strings.TrimSpace(i.Title); t != "" {
		return t
	}
	if i.IsNote() {
		return "(untitled note)"
	}
	return i.URL
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(serverTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

// CloneItems returns an independent copy of items.
func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
