package config

import (
	"context"
	"strings"
	"sync"
)

// Store is the process-wide settings cell. Writes go to disk first and are
// published to subscribers only once they have been persisted.
type Store struct {
	path string

	mu          sync.RWMutex
	current     Settings
	subscribers map[chan Settings]struct{}
}

// Open loads the settings at path into a new Store.
func Open(path string) (*Store, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	s, err := Load(resolved)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:        resolved,
		current:     s,
		subscribers: make(map[chan Settings]struct{}),
	}, nil
}

// NewMemoryStore returns a Store that is never persisted. Save always succeeds.
func NewMemoryStore(initial Settings) *Store {
	return &Store{
		current:     initial,
		subscribers: make(map[chan Settings]struct{}),
	}
}

// Path returns the resolved file backing the store, or "" for memory stores.
func (s *Store) Path() string {
	return s.path
}

// Current returns the latest settings.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save replaces the settings wholesale. On error the previous value stays.
func (s *Store) Save(next Settings) error {
	next.BaseURL = strings.TrimSpace(next.BaseURL)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		if err := Save(s.path, next); err != nil {
			return err
		}
	}
	s.current = next
	for ch := range s.subscribers {
		offerLatest(ch, next)
	}
	return nil
}

// Subscribe returns a channel that receives the current settings at once and
// every later change. A slow reader only ever sees the newest value. The
// channel is closed when ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan Settings {
	ch := make(chan Settings, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- s.current
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// offerLatest replaces any unread value in ch with v. Callers hold s.mu.
func offerLatest(ch chan Settings, v Settings) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
