// Package ui provides the terminal user interface for linksaver.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns only presentation state; all
// network work is delegated to an app.Synchronizer, whose Events channel is
// read by a waiting tea.Cmd and turned into eventMsg values. The model never
// blocks on the network.
//
// # Package Structure
//
//   - app.go: Model, Update dispatch, synchronizer events, and Run
//   - list.go: item list, detail pane, search, and list key handling
//   - form.go: add link, add note, edit, and settings forms plus clipboard
//   - logs.go: request log viewer backed by internal/logtail
//   - header.go: status header, command bar, and notice line
//   - modal.go: Modal interface and the delete confirmation
//   - help.go: keyboard shortcut overlay
//   - markdown.go: glamour rendering of note bodies
//   - theme.go, style_helpers.go, keys.go, layout.go: styling and bindings
//
// # Views
//
//   - List: items with link or note markers and a detail pane on wide terminals
//   - Add link / Add note / Edit / Settings: forms saved with ctrl+s
//   - Request log: the tail of the log file, colored by request outcome
//
// # Notices
//
// Every operation outcome arrives as one app.Notice. The newest notice is
// shown on the bottom line until NoticeTimeout passes or it is dismissed.
//
// # Themes
//
// Themes are cycled with T and persisted through internal/prefs.
package ui
