package client

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/papercomputeco/restful/pkg/sse"
)

// Stream is a lazy, one-pass sequence of SSE events. Nothing happens until
// the first Next call: request validation, dispatch, and every failure all
// surface while consuming. The sequence is forward-only and may be consumed
// at most once; the underlying byte source has no seek capability.
//
// The stream exclusively owns the transport connection. It is released on
// normal exhaustion, on terminal error, and on Close. Callers that abandon
// iteration early must call Close.
type Stream struct {
	client *Client
	req    Request
	opts   []sse.Option

	// ctx was supplied when the stream was created and governs its whole
	// lifetime, like http.Request does for a single exchange.
	ctx context.Context

	reader  *sse.Reader
	body    io.ReadCloser
	started bool
	closed  bool
	err     error
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithLineTerminator sets the SSE line terminator convention. Defaults to a
// single line feed; pass sse.CarriageReturnLineFeed for CRLF servers.
func WithLineTerminator(term string) StreamOption {
	return func(s *Stream) {
		s.opts = append(s.opts, sse.WithLineTerminator(term))
	}
}

// WithRecorder mirrors the raw stream bytes verbatim to w while events are
// consumed.
func WithRecorder(w io.Writer) StreamOption {
	return func(s *Stream) {
		s.opts = append(s.opts, sse.WithTee(w))
	}
}

// Stream prepares a lazy SSE event sequence for req. The request is built
// and dispatched on the first Next call; ctx bounds the entire life of the
// stream.
func (c *Client) Stream(ctx context.Context, req Request, opts ...StreamOption) *Stream {
	s := &Stream{
		client: c,
		req:    req,
		ctx:    ctx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next event, or nil, nil when the stream is exhausted.
// The first call performs validation and transport dispatch, so request
// building errors, a non-2xx status (*HTTPError with an empty body), and
// transport failures all surface here. After a terminal error every
// subsequent call returns the same error.
func (s *Stream) Next() (*sse.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.closed {
		return nil, nil
	}

	if !s.started {
		if err := s.start(); err != nil {
			s.err = err
			return nil, err
		}
	}

	ev, err := s.reader.Next()
	if err != nil {
		s.err = err
		s.release()
		return nil, err
	}

	if ev == nil {
		// Source exhausted: terminate normally and release the connection.
		s.release()
		return nil, nil
	}

	return ev, nil
}

// Close abandons the sequence and releases the transport connection. It is
// safe to call at any point, including after exhaustion, and idempotent.
func (s *Stream) Close() error {
	if s.body == nil {
		s.closed = true
		return nil
	}
	return s.release()
}

func (s *Stream) release() error {
	s.closed = true
	body := s.body
	s.body = nil
	if body == nil {
		return nil
	}
	return body.Close()
}

// start builds the request, injects the streaming default headers, and
// opens the live byte source.
func (s *Stream) start() error {
	s.started = true

	hreq, err := s.client.build(s.ctx, s.req)
	if err != nil {
		return err
	}

	// Streaming defaults, only when not explicitly supplied.
	if hreq.Header.Get("Accept") == "" {
		hreq.Header.Set("Accept", "text/event-stream")
	}
	if hreq.Header.Get("Cache-Control") == "" {
		hreq.Header.Set("Cache-Control", "no-cache")
	}

	s.client.logger.Debug("opening event stream",
		zap.String("method", hreq.Method),
		zap.String("url", hreq.URL.String()),
		zap.String("request_id", hreq.Header.Get(requestIDHeader)),
	)

	sb, err := s.client.transport.OpenStream(s.ctx, hreq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	// A non-2xx status aborts immediately. The error body is not read on
	// the streaming path.
	if sb.StatusCode < 200 || sb.StatusCode > 299 {
		sb.Body.Close()
		return &HTTPError{StatusCode: sb.StatusCode}
	}

	s.body = sb.Body
	s.reader = sse.NewReader(sb.Body, s.opts...)
	return nil
}
