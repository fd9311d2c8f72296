package sse

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// LineFeed and CarriageReturnLineFeed are the two supported line
// terminator conventions.
const (
	LineFeed               = "\n"
	CarriageReturnLineFeed = "\r\n"
)

// Reader parses SSE events incrementally from a byte source. It is a
// single-consumer, forward-only reader: the source is a live stream with no
// seek capability, so events may be consumed at most once.
type Reader struct {
	scanner *bufio.Scanner

	// current accumulates fields for the event being built in the current scan.
	current *Event
	dataBuf strings.Builder
}

// Option configures a Reader.
type Option func(*readerConfig)

type readerConfig struct {
	terminator string
	tee        io.Writer
}

// WithLineTerminator sets the line terminator the stream uses. Defaults to
// LineFeed; servers that frame with CRLF should pass
// CarriageReturnLineFeed.
func WithLineTerminator(term string) Option {
	return func(c *readerConfig) {
		if term != "" {
			c.terminator = term
		}
	}
}

// WithTee mirrors all raw stream bytes verbatim to dst as they are read,
// so a recording of the stream can be kept alongside parsed consumption.
func WithTee(dst io.Writer) Option {
	return func(c *readerConfig) {
		c.tee = dst
	}
}

// NewReader returns a Reader that parses SSE events from src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	cfg := readerConfig{terminator: LineFeed}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.tee != nil {
		src = io.TeeReader(src, cfg.tee)
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(splitOn(cfg.terminator))

	return &Reader{
		scanner: scanner,
		current: &Event{Retry: RetryUnset},
	}
}

// splitOn returns a bufio.SplitFunc that frames tokens on the given line
// terminator. A final unterminated line is returned as its own token at EOF.
func splitOn(terminator string) bufio.SplitFunc {
	term := []byte(terminator)
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if i := bytes.Index(data, term); i >= 0 {
			return i + len(term), data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// Next returns the next parsed SSE event. It blocks until a complete event
// is available (terminated by a blank line in the stream). Next returns
// nil, nil when the source is exhausted; any pending unterminated event is
// yielded first.
//
// A transport-level read failure surfaces as the returned error; partially
// accumulated event data at that point is discarded, not emitted.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		// Strip any trailing newline whitespace left over when the stream
		// mixes conventions (e.g. CRLF input scanned with a LF terminator).
		line := strings.TrimRight(r.scanner.Text(), "\r\n")

		// A blank line is the dispatch boundary. Dispatch only when data
		// has accumulated so blank keep-alive lines are tolerated.
		if line == "" {
			if ev := r.dispatch(); ev != nil {
				return ev, nil
			}
			continue
		}

		// Lines starting with ':' are comments. Skip them entirely.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, val, ok := strings.Cut(line, ":")
		if !ok {
			// Malformed field line with no colon: skipped, not fatal.
			continue
		}

		// Strip a single leading space after the colon, per spec. Further
		// spaces are part of the value.
		if len(val) > 0 && val[0] == ' ' {
			val = val[1:]
		}

		r.processField(field, val)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// Source exhausted with no error. If there is an in-progress event
	// (stream ended without a trailing blank line), yield it.
	if ev := r.dispatch(); ev != nil {
		return ev, nil
	}

	return nil, nil
}

// processField accumulates a single parsed SSE field into the current event.
func (r *Reader) processField(field, value string) {
	switch field {
	case "data":
		// Multiple data fields are joined with "\n".
		if r.dataBuf.Len() > 0 {
			r.dataBuf.WriteByte('\n')
		}
		r.dataBuf.WriteString(value)
	case "event":
		r.current.Type = value
	case "id":
		r.current.ID = value
	case "retry":
		ms, err := strconv.Atoi(value)
		if err == nil {
			r.current.Retry = ms
		}
		// An unparseable retry value is ignored per the SSE spec.
	default:
		// Unknown fields are ignored per the SSE spec.
	}
}

// dispatch emits the accumulated event and resets the accumulator, or
// returns nil when no data has been accumulated.
func (r *Reader) dispatch() *Event {
	if r.dataBuf.Len() == 0 {
		return nil
	}

	ev := r.current
	ev.Data = r.dataBuf.String()

	r.current = &Event{Retry: RetryUnset}
	r.dataBuf.Reset()
	return ev
}
