package state

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func cloneInts(v []int) []int {
	if v == nil {
		return nil
	}
	dup := make([]int, len(v))
	copy(dup, v)
	return dup
}

func TestScreen_BeginFinishSnapshotClone(t *testing.T) {
	s := NewScreen(cloneInts)

	if snap := s.Snapshot(); snap.Phase != PhaseIdle || snap.HasData {
		t.Fatalf("initial snapshot = %#v, want idle without data", snap)
	}

	before := time.Now()
	gen := s.Begin(TriggerMount)
	if snap := s.Snapshot(); !snap.Loading() || snap.Trigger != TriggerMount {
		t.Fatalf("after Begin phase=%v trigger=%v, want loading/mount", snap.Phase, snap.Trigger)
	}

	data := []int{1, 2}
	if !s.Finish(gen, data, nil) {
		t.Fatalf("Finish returned false for current generation")
	}
	data[0] = 42

	snap := s.Snapshot()
	if snap.Phase != PhaseSuccess || !snap.HasData || snap.LastError != nil {
		t.Fatalf("snapshot = %#v, want success with data", snap)
	}
	if snap.Data[0] != 1 {
		t.Fatalf("stored data aliased caller slice: got %d want 1", snap.Data[0])
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	snap.Data[1] = 999
	if again := s.Snapshot(); again.Data[1] != 2 {
		t.Fatalf("Snapshot should clone data; got %d want 2", again.Data[1])
	}
}

func TestScreen_StaleGenerationIgnored(t *testing.T) {
	s := NewScreen(cloneInts)

	first := s.Begin(TriggerSearch)
	second := s.Begin(TriggerSearch)

	if !s.Finish(second, []int{2}, nil) {
		t.Fatalf("Finish(second) = false, want true")
	}
	if s.Finish(first, []int{1}, nil) {
		t.Fatalf("Finish(first) = true, want stale result dropped")
	}
	if got := s.Snapshot().Data; len(got) != 1 || got[0] != 2 {
		t.Fatalf("data = %v, want [2]", got)
	}
}

func TestScreen_StaleGenerationIgnoredWhileNewerLoading(t *testing.T) {
	s := NewScreen(cloneInts)

	first := s.Begin(TriggerSearch)
	_ = s.Begin(TriggerSearch)

	if s.Finish(first, []int{1}, nil) {
		t.Fatalf("Finish(first) = true while newer fetch in flight")
	}
	if snap := s.Snapshot(); !snap.Loading() || snap.HasData {
		t.Fatalf("snapshot = %#v, want still loading without data", snap)
	}
}

func TestScreen_ErrorKeepsPreviousData(t *testing.T) {
	s := NewScreen(cloneInts)

	s.Finish(s.Begin(TriggerMount), []int{7}, nil)
	origErr := errors.New("boom")
	if !s.Finish(s.Begin(TriggerRefresh), nil, origErr) {
		t.Fatalf("Finish with error returned false")
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseFailed {
		t.Fatalf("phase = %v, want failed", snap.Phase)
	}
	if len(snap.Data) != 1 || snap.Data[0] != 7 || !snap.HasData {
		t.Fatalf("data changed on error: got %v", snap.Data)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapping %v", snap.LastError, origErr)
	}

	s.Finish(s.Begin(TriggerRefresh), []int{8}, nil)
	if snap := s.Snapshot(); snap.LastError != nil {
		t.Fatalf("LastError = %v after success, want nil", snap.LastError)
	}
}

func TestScreen_SettleAndReset(t *testing.T) {
	s := NewScreen(cloneInts)

	gen := s.Begin(TriggerMount)
	s.Settle()
	if !s.Snapshot().Loading() {
		t.Fatalf("Settle should not leave Loading")
	}
	s.Finish(gen, []int{1}, nil)
	s.Settle()
	if snap := s.Snapshot(); snap.Phase != PhaseIdle || !snap.HasData {
		t.Fatalf("after Settle snapshot = %#v, want idle with data", snap)
	}

	pending := s.Begin(TriggerRefresh)
	s.Reset()
	snap := s.Snapshot()
	if snap.Phase != PhaseIdle || snap.HasData || snap.Data != nil {
		t.Fatalf("after Reset snapshot = %#v, want empty idle", snap)
	}
	if s.Finish(pending, []int{5}, nil) {
		t.Fatalf("Finish after Reset applied a result from before the reset")
	}
}

func TestScreen_ValueTypeWithoutClone(t *testing.T) {
	type detail struct{ Title string }
	s := NewScreen[detail](nil)
	s.Finish(s.Begin(TriggerSubmit), detail{Title: "x"}, nil)
	if got := s.Snapshot().Data.Title; got != "x" {
		t.Fatalf("Title = %q, want %q", got, "x")
	}
}

func TestScreen_ConcurrentAccess(t *testing.T) {
	s := NewScreen(cloneInts)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				gen := s.Begin(TriggerRefresh)
				s.Finish(gen, []int{n, j}, nil)
				_ = s.Snapshot()
				s.Settle()
			}
		}(i)
	}
	wg.Wait()
	if snap := s.Snapshot(); snap.Generation != 400 {
		t.Fatalf("Generation = %d, want 400", snap.Generation)
	}
}

func TestPhaseAndTriggerStrings(t *testing.T) {
	if PhaseLoading.String() != "loading" || PhaseFailed.String() != "failed" {
		t.Fatalf("unexpected phase strings")
	}
	if TriggerSettings.String() != "settings" || TriggerMutation.String() != "mutation" {
		t.Fatalf("unexpected trigger strings")
	}
}
