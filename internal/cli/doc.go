// Package cli is the linksaver command line, built with cobra.
//
// Running linksaver with no subcommand starts the TUI. The subcommands are
// scriptable equivalents of the TUI actions and print a JSON envelope,
// {"data": ...}, on stdout:
//
//	linksaver settings show|set
//	linksaver list [-s term]
//	linksaver add <url>
//	linksaver note --title T [--text X | stdin]
//	linksaver show <id>
//	linksaver edit <id> [--title T] [--description D]
//	linksaver delete <id>
//	linksaver open <id>
//	linksaver share [text | stdin]
//	linksaver logs [-n N] [-s term]
//
// Failures print the same notice text the TUI shows ("Link already exists",
// "Settings not configured", ...) on stderr and exit non-zero.
//
// Every command sends the standard logger to the request log first, so
// requests made from scripts show up in "linksaver logs" and the TUI log view.
package cli
