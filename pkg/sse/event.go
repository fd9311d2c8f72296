// Package sse provides an incremental, pull-driven reader for SSE
// (Server-Sent Events) byte streams. It parses `field: value` framed lines
// into events at each blank-line dispatch boundary, supports both LF and
// CRLF line conventions, and can mirror the raw stream bytes verbatim to a
// destination writer for recording.
//
// This package intentionally does NOT provide SSE writer or server
// capabilities.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

// RetryUnset is the Retry field value for events whose stream never carried
// a parseable "retry:" line.
const RetryUnset = -1

// Event represents a single parsed SSE event, delimited by a blank line
// in the byte stream.
type Event struct {
	// Type is the SSE event type from the "event:" field.
	// An empty string means the default "message" type per the SSE spec.
	Type string

	// Data is the concatenated contents of all "data:" lines for this event,
	// joined with "\n" (per the SSE spec, multiple data fields are joined
	// with a single newline).
	Data string

	// ID is the last event ID from the "id:" field, if present.
	ID string

	// Retry is the reconnection interval in milliseconds from the "retry:"
	// field, or RetryUnset when absent or unparseable.
	Retry int
}
