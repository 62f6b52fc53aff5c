// Package logtail reads and classifies the request log.
//
// # Overview
//
// linksaver writes one line per HTTP request and response through the
// standard logger. The request log screen shows the end of that file, so
// this package provides:
//
//  1. Read: the last N lines of a file, using a ring buffer so memory is
//     bounded by N rather than by file size
//  2. Parse: split a line into timestamp and message and classify it as a
//     request, a response, or a failure
//  3. Filter: case-insensitive substring filtering
//
// Example usage:
//
//	lines, err := logtail.Read(logPath, 400)
//	if err != nil {
//		return err
//	}
//	for _, line := range logtail.Filter(lines, "POST") {
//		e := logtail.Parse(line)
//		render(e.Time, e.Kind, e.Message)
//	}
//
// A missing log file is not an error; Read returns no lines.
//
// # Classification
//
//	request: GET http://host/?s=go            → KindRequest
//	response: GET http://host/ 200 in 12ms    → KindResponse
//	response: POST http://host/ 409 in 3ms    → KindFailure (status >= 400)
//	response: GET ... failed after 1ms: ...   → KindFailure
//	anything else                             → KindOther
package logtail
