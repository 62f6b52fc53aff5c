package app

import (
	"context"
	"log"
	"sync"

	"github.com/five82/linksaver/internal/config"
	"github.com/five82/linksaver/internal/linkapi"
	"github.com/five82/linksaver/internal/state"
)

// SettingsSource supplies the current settings and change notifications.
// *config.Store implements it.
type SettingsSource interface {
	Current() config.Settings
	Subscribe(ctx context.Context) <-chan config.Settings
}

// EventKind tells the UI which part of an Event is set.
type EventKind int

const (
	EventList EventKind = iota + 1
	EventDetail
	EventNotice
	EventMutation
)

// Event is published whenever visible state changes.
type Event struct {
	Kind   EventKind
	List   state.Snapshot[[]linkapi.Item]
	Detail state.Snapshot[linkapi.Item]
	Notice Notice

	// Set for EventMutation.
	Op   Op
	Item linkapi.Item
	Err  error
}

const eventBuffer = 64

// Synchronizer keeps the list and detail screens in step with the server.
// Fetches are started by explicit triggers; each new fetch for a screen
// cancels the previous one and only the latest result is applied.
// All network calls run on goroutines and report back through Events.
type Synchronizer struct {
	settings SettingsSource
	build    ClientFactory
	list     *state.Screen[[]linkapi.Item]
	detail   *state.Screen[linkapi.Item]
	events   chan Event

	mu           sync.Mutex
	base         context.Context
	current      config.Settings
	search       string
	mounted      bool
	cancelList   context.CancelFunc
	cancelDetail context.CancelFunc
}

// NewSynchronizer returns a Synchronizer reading settings from src. A nil
// build uses DefaultClientFactory.
func NewSynchronizer(src SettingsSource, build ClientFactory) *Synchronizer {
	if build == nil {
		build = DefaultClientFactory
	}
	return &Synchronizer{
		settings: src,
		build:    build,
		list:     state.NewScreen(linkapi.CloneItems),
		detail:   state.NewScreen[linkapi.Item](nil),
		events:   make(chan Event, eventBuffer),
		base:     context.Background(),
		current:  src.Current(),
	}
}

// Events delivers state changes and notices.
func (s *Synchronizer) Events() <-chan Event {
	return s.events
}

// Start follows settings changes until ctx ends. A change re-fetches the
// list when it is mounted. In-flight requests are canceled when ctx ends.
func (s *Synchronizer) Start(ctx context.Context) {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	updates := s.settings.Subscribe(ctx)
	go func() {
		defer s.cancelAll()
		for next := range updates {
			s.applySettings(next)
		}
	}()
}

func (s *Synchronizer) applySettings(next config.Settings) {
	s.mu.Lock()
	if next == s.current {
		s.mu.Unlock()
		return
	}
	s.current = next
	mounted := s.mounted
	s.mu.Unlock()

	if !mounted {
		return
	}
	s.fetchList(state.TriggerSettings)
	s.publish(Event{Kind: EventList, List: s.list.Snapshot()})
}

func (s *Synchronizer) cancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelList != nil {
		s.cancelList()
	}
	if s.cancelDetail != nil {
		s.cancelDetail()
	}
}

// Settings returns the settings snapshot requests are built from.
func (s *Synchronizer) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Search returns the current search term.
func (s *Synchronizer) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// List returns the list screen state.
func (s *Synchronizer) List() state.Snapshot[[]linkapi.Item] {
	return s.list.Snapshot()
}

// Detail returns the detail screen state.
func (s *Synchronizer) Detail() state.Snapshot[linkapi.Item] {
	return s.detail.Snapshot()
}

// SettleList marks the list result as shown.
func (s *Synchronizer) SettleList() {
	s.list.Settle()
}

// Mount shows the list screen and fetches it.
func (s *Synchronizer) Mount() {
	s.mu.Lock()
	s.mounted = true
	s.mu.Unlock()
	s.fetchList(state.TriggerMount)
}

// Unmount leaves the list screen, canceling its fetch and dropping its data.
func (s *Synchronizer) Unmount() {
	s.mu.Lock()
	s.mounted = false
	if s.cancelList != nil {
		s.cancelList()
		s.cancelList = nil
	}
	s.mu.Unlock()
	s.list.Reset()
}

func (s *Synchronizer) isMounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// SetSearch changes the search term and re-fetches the list. It reports
// whether the term changed; an unchanged term starts no request.
func (s *Synchronizer) SetSearch(term string) bool {
	s.mu.Lock()
	if term == s.search {
		s.mu.Unlock()
		return false
	}
	s.search = term
	mounted := s.mounted
	s.mu.Unlock()

	if mounted {
		s.fetchList(state.TriggerSearch)
	}
	return true
}

// Refresh re-fetches the list.
func (s *Synchronizer) Refresh() {
	s.fetchList(state.TriggerRefresh)
}

func (s *Synchronizer) fetchList(trigger state.Trigger) {
	s.mu.Lock()
	if s.cancelList != nil {
		s.cancelList()
	}
	ctx, cancel := context.WithCancel(s.base)
	s.cancelList = cancel
	settings := s.current
	search := s.search
	gen := s.list.Begin(trigger)
	s.mu.Unlock()

	go func() {
		defer cancel()
		items, err := s.listItems(ctx, settings, search)
		if linkapi.Classify(err) == linkapi.KindCanceled {
			return
		}
		if !s.list.Finish(gen, items, err) {
			return
		}
		if err != nil {
			log.Printf("%s failed (%s): %v", OpList, trigger, err)
			s.publish(Event{Kind: EventNotice, Notice: Describe(OpList, err)})
		}
		s.publish(Event{Kind: EventList, List: s.list.Snapshot()})
	}()
}

func (s *Synchronizer) listItems(ctx context.Context, settings config.Settings, search string) ([]linkapi.Item, error) {
	client, err := s.build(settings)
	if err != nil {
		return nil, err
	}
	return client.List(ctx, search)
}

// OpenDetail fetches one item for the edit screen.
func (s *Synchronizer) OpenDetail(id string) {
	s.mu.Lock()
	if s.cancelDetail != nil {
		s.cancelDetail()
	}
	ctx, cancel := context.WithCancel(s.base)
	s.cancelDetail = cancel
	settings := s.current
	gen := s.detail.Begin(state.TriggerMount)
	s.mu.Unlock()

	go func() {
		defer cancel()
		var item linkapi.Item
		client, err := s.build(settings)
		if err == nil {
			item, err = client.Get(ctx, id)
		}
		if linkapi.Classify(err) == linkapi.KindCanceled {
			return
		}
		if !s.detail.Finish(gen, item, err) {
			return
		}
		if err != nil {
			log.Printf("%s %s failed: %v", OpGet, id, err)
			s.publish(Event{Kind: EventNotice, Notice: Describe(OpGet, err)})
		}
		s.publish(Event{Kind: EventDetail, Detail: s.detail.Snapshot()})
	}()
}

// CloseDetail leaves the edit screen.
func (s *Synchronizer) CloseDetail() {
	s.mu.Lock()
	if s.cancelDetail != nil {
		s.cancelDetail()
		s.cancelDetail = nil
	}
	s.mu.Unlock()
	s.detail.Reset()
}

// AddLink saves a link.
func (s *Synchronizer) AddLink(link string) {
	s.mutate(OpAddLink, func(ctx context.Context, c linkapi.ItemService) (linkapi.Item, error) {
		return c.AddLink(ctx, link)
	}, nil)
}

// AddNote saves a note.
func (s *Synchronizer) AddNote(title, text string) {
	s.mutate(OpAddNote, func(ctx context.Context, c linkapi.ItemService) (linkapi.Item, error) {
		return c.AddNote(ctx, title, text)
	}, nil)
}

// Update changes an item's title and description. The detail screen shows
// the submitted state while the request runs.
func (s *Synchronizer) Update(id, title, description string) {
	gen := s.detail.Begin(state.TriggerSubmit)
	s.mutate(OpUpdate, func(ctx context.Context, c linkapi.ItemService) (linkapi.Item, error) {
		return c.Update(ctx, id, title, description)
	}, func(item linkapi.Item, err error) {
		if s.detail.Finish(gen, item, err) {
			s.publish(Event{Kind: EventDetail, Detail: s.detail.Snapshot()})
		}
	})
}

// Delete removes an item. The list keeps the item until the server
// confirms, then re-fetches.
func (s *Synchronizer) Delete(id string) {
	s.mutate(OpDelete, func(ctx context.Context, c linkapi.ItemService) (linkapi.Item, error) {
		return linkapi.Item{ID: id}, c.Delete(ctx, id)
	}, nil)
}

// mutate runs call on a goroutine. after, when set, sees the outcome before
// any event is published. A successful call re-fetches a mounted list.
func (s *Synchronizer) mutate(op Op, call func(context.Context, linkapi.ItemService) (linkapi.Item, error), after func(linkapi.Item, error)) {
	s.mu.Lock()
	ctx := s.base
	settings := s.current
	s.mu.Unlock()

	go func() {
		var item linkapi.Item
		client, err := s.build(settings)
		if err == nil {
			item, err = call(ctx, client)
		}
		if err != nil {
			log.Printf("%s failed: %v", op, err)
		}
		if after != nil {
			after(item, err)
		}
		notice := Describe(op, err)
		s.publish(Event{Kind: EventMutation, Op: op, Item: item, Err: err, Notice: notice})
		if !notice.Empty() {
			s.publish(Event{Kind: EventNotice, Notice: notice})
		}
		if err == nil && s.isMounted() {
			s.fetchList(state.TriggerMutation)
		}
	}()
}

func (s *Synchronizer) publish(ev Event) {
	s.mu.Lock()
	done := s.base.Done()
	s.mu.Unlock()

	select {
	case s.events <- ev:
	case <-done:
	}
}
