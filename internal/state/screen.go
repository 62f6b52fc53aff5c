package state

import (
	"fmt"
	"sync"
	"time"
)

// Phase is where a screen is in its fetch cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Trigger names the input that started a fetch.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerMount
	TriggerSettings
	TriggerSearch
	TriggerRefresh
	TriggerMutation
	TriggerSubmit
)

func (t Trigger) String() string {
	switch t {
	case TriggerMount:
		return "mount"
	case TriggerSettings:
		return "settings"
	case TriggerSearch:
		return "search"
	case TriggerRefresh:
		return "refresh"
	case TriggerMutation:
		return "mutation"
	case TriggerSubmit:
		return "submit"
	default:
		return "none"
	}
}

// Snapshot is a point-in-time copy of a screen's state.
type Snapshot[T any] struct {
	Phase       Phase
	Data        T
	HasData     bool
	Trigger     Trigger
	Generation  uint64
	LastUpdated time.Time
	LastError   error
}

// Loading reports whether a fetch is in flight.
func (s Snapshot[T]) Loading() bool {
	return s.Phase == PhaseLoading
}

// Screen tracks one screen's data through Idle, Loading, and a result
// phase. Each Begin starts a new generation; results from older generations
// are dropped by Finish.
type Screen[T any] struct {
	mu    sync.RWMutex
	snap  Snapshot[T]
	clone func(T) T
}

// NewScreen returns an idle screen. clone copies T for snapshots; nil means
// T is copied by value.
func NewScreen[T any](clone func(T) T) *Screen[T] {
	return &Screen[T]{clone: clone}
}

// Begin enters Loading for trigger and returns the generation the caller
// must pass to Finish.
func (s *Screen[T]) Begin(trigger Trigger) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Generation++
	s.snap.Phase = PhaseLoading
	s.snap.Trigger = trigger
	return s.snap.Generation
}

// Finish records the outcome of the fetch started by generation gen. It
// returns false and changes nothing when a newer Begin has happened since.
// On error the previous data is kept and the error recorded.
func (s *Screen[T]) Finish(gen uint64, data T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snap.Generation || s.snap.Phase != PhaseLoading {
		return false
	}
	s.snap.LastUpdated = time.Now()
	if err != nil {
		s.snap.Phase = PhaseFailed
		s.snap.LastError = err
		return true
	}
	s.snap.Phase = PhaseSuccess
	s.snap.Data = s.copy(data)
	s.snap.HasData = true
	s.snap.LastError = nil
	return true
}

// Settle returns a finished screen to Idle once its result has been shown.
func (s *Screen[T]) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.Phase == PhaseSuccess || s.snap.Phase == PhaseFailed {
		s.snap.Phase = PhaseIdle
	}
}

// Reset drops the data when the screen is left. The generation keeps
// counting so results from before the reset are still rejected.
func (s *Screen[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.snap.Generation + 1
	s.snap = Snapshot[T]{Generation: gen}
}

// Snapshot returns a copy of the current state.
func (s *Screen[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.Data = s.copy(s.snap.Data)
	if s.snap.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snap.LastError)
	}
	return snap
}

func (s *Screen[T]) copy(v T) T {
	if s.clone == nil {
		return v
	}
	return s.clone(v)
}
