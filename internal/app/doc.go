// Package app keeps linksaver's screens in step with the remote item service.
//
// # Overview
//
// The package sits between the presentation layers (the TUI in internal/ui
// and the commands in internal/cli) and the HTTP client in internal/linkapi.
// It owns three concerns:
//
//   - client.go: building a client from a settings snapshot (ClientFactory)
//   - synchronizer.go: triggered fetches, mutations, and the event stream
//   - notice.go: turning an operation outcome into one user-visible notice
//
// share.go handles text handed over by another program, and logging.go
// points the standard logger at the request log file.
//
// # Data Flow
//
//	┌──────────────┐  Subscribe   ┌──────────────────┐
//	│ config.Store │─────────────→│   Synchronizer   │
//	└──────────────┘              │  list   Screen   │
//	                              │  detail Screen   │
//	 Mount / SetSearch / Refresh ─→│                  │── Events() ──→ UI
//	 AddLink / AddNote / Update  ─→│  goroutine per   │
//	 Delete / OpenDetail         ─→│  request         │
//	                              └────────┬─────────┘
//	                                       │ ClientFactory(settings)
//	                                       ↓
//	                               linkapi.ItemService
//
// # Fetch Triggers
//
// The list is fetched when it is mounted, when settings change, when the
// search term changes, on explicit refresh, and after every successful
// add, update, or delete. A new fetch cancels the one in flight for the
// same screen, and state.Screen generations make sure a late response for
// an older input is dropped. Canceled fetches produce no notice.
//
// Delete is not optimistic: the item stays in the list until the server
// confirms, then the whole list is fetched again.
//
// # Error Handling
//
// Every failure is logged with log.Printf and published as exactly one
// EventNotice. Describe maps errors to text:
//
//	linkapi.ErrNotConfigured → "Settings not configured"
//	linkapi.ErrConflict      → "Link already exists"
//	anything else            → "Error <verb>: <detail>"
//
// Nothing in this package is fatal; the UI keeps running and shows the last
// good data next to the notice.
//
// # Usage Example
//
//	store, err := config.Open("")
//	if err != nil {
//		return err
//	}
//	sync := app.NewSynchronizer(store, app.DefaultClientFactory)
//	sync.Start(ctx)
//	sync.Mount()
//	for ev := range sync.Events() {
//		render(ev)
//	}
package app
