// Package config owns the server connection settings for linksaver.
//
// # Overview
//
// The settings blob has exactly three keys and no schema version:
//
//	base_url = "https://links.example.com/"
//	username = "ada"
//	password = "secret"
//
// An empty base_url means "not configured". Callers must check
// Settings.Configured (or rely on linkapi.ErrNotConfigured) before
// attempting any network call.
//
// # File Location
//
// The path is resolved in this order:
//
//  1. An explicit path passed to Load, Save or Open
//  2. The LINKSAVER_CONFIG environment variable
//  3. ~/.config/linksaver/settings.toml
//
// Tilde expansion is performed and the result is made absolute.
//
// # Writes
//
// Save replaces all three fields at once. The new content is written to a
// temp file in the same directory and renamed over the target, so a failed
// save (disk full, permissions) leaves the previous settings in place. The
// file is created with mode 0600 because it carries a password.
//
// # Store
//
// Store wraps the file in a watch-style value cell:
//
//	st, err := config.Open("")
//	if err != nil {
//		return err
//	}
//	for s := range st.Subscribe(ctx) {
//		// rebuild the API client for s
//	}
//
// Subscribe delivers the current value immediately, then every successful
// Save. Each subscriber holds at most one pending value; when it falls
// behind, older values are replaced by the newest one.
package config
