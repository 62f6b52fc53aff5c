// Package state provides thread-safe per-screen view state.
//
// # Overview
//
// A Screen holds the data one screen displays together with where that
// screen is in its fetch cycle:
//
//	Idle ──Begin──→ Loading ──Finish──→ Success ──Settle──→ Idle
//	                              └────→ Failed  ──┘
//
// Every Begin records the Trigger that caused it (mount, settings change,
// search edit, refresh, mutation, form submit) and starts a new generation.
// Finish only applies a result whose generation is still the latest, so a
// slow response for an older input can never overwrite the state produced
// by a newer one:
//
//	g1 := list.Begin(state.TriggerSearch) // user typed "a"
//	g2 := list.Begin(state.TriggerSearch) // user typed "ab"
//	list.Finish(g2, itemsForAB, nil)      // applied
//	list.Finish(g1, itemsForA, nil)       // ignored, returns false
//
// # Update Semantics
//
// A successful Finish replaces the data wholesale. A failed Finish keeps the
// previously displayed data and records LastError, so the UI can show the
// last good list next to an error notice.
//
// Reset drops the data when the user navigates away; nothing is cached
// across navigation.
//
// # Concurrency
//
// Screen uses a sync.RWMutex. Snapshot returns a copy; pass a clone
// function to NewScreen when T contains slices or maps.
package state
