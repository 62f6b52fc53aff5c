// Package linkapi provides an HTTP client for the link saving service.
//
// # Overview
//
// The service stores two kinds of items: links, whose URL is a web address,
// and notes, whose URL carries the "note:" prefix. The client exposes the
// item operations as methods on *Client, which satisfies ItemService.
//
// # Endpoints
//
// All paths are relative to the configured base URL, which is normalized to
// end with exactly one slash:
//
//	GET    {base}?s=<term>   list items (s omitted when the term is blank)
//	POST   {base}            add a link (url) or note (note-title, note-text)
//	GET    {base}{id}        fetch one item
//	PATCH  {base}{id}        update title and description
//	DELETE {base}{id}        remove an item
//
// Request bodies are form encoded. Responses are JSON.
//
// # Client Usage
//
//	client, err := linkapi.NewClient(settings.BaseURL, linkapi.Options{
//		Username: settings.Username,
//		Password: settings.Password,
//	})
//	if errors.Is(err, linkapi.ErrNotConfigured) {
//		// prompt for settings
//	}
//	items, err := client.List(ctx, "golang")
//
// Every request carries HTTP Basic credentials and is logged (method, URL,
// status, elapsed time) through the standard log package. Headers are never
// logged.
//
// # Errors
//
// A 409 response matches ErrConflict via errors.Is. Other non-2xx responses
// are returned as *StatusError. Classify maps any error onto the ErrorKind
// taxonomy used for user-facing notices.
//
// The client sets no timeout and does not retry. Cancel the context to stop
// an in-flight request.
package linkapi
