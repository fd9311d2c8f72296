// Package client issues REST requests with JSON object bodies and decodes
// JSON object responses into the pkg/value model. It classifies every
// outcome into one of a closed set of typed errors, and supports incremental
// consumption of SSE response streams through Stream.
//
// The transport is an injected collaborator: there is no package-level
// shared client, so no hidden process-wide state.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/papercomputeco/restful/pkg/utils"
	"github.com/papercomputeco/restful/pkg/value"
)

const requestIDHeader = "X-Request-Id"

// Request describes a single REST call. It is constructed per call and
// never retained by the client after dispatch.
type Request struct {
	// URL is the absolute request URL.
	URL string

	// Method is the HTTP method. Defaults to GET when empty.
	Method string

	// Headers are applied to the outgoing request, last write wins per key.
	Headers map[string]string

	// Body is an optional JSON object body. When present it is serialized
	// and a Content-Type: application/json header is added unless one was
	// supplied explicitly.
	Body *value.Object
}

// Client dispatches requests through an injected Transport. It is stateless
// between calls; concurrent use from multiple goroutines is safe.
type Client struct {
	transport Transport
	logger    *zap.Logger
	newID     func() string
}

// Option configures a Client created with New.
type Option func(*Client)

// WithTransport injects the transport collaborator. Defaults to a
// NetTransport over a fresh *http.Client.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithHTTPClient is shorthand for WithTransport(NewNetTransport(hc)).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.transport = NewNetTransport(hc)
	}
}

// WithLogger sets the structured logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDs overrides the request ID generator used for the
// X-Request-Id default header. Tests use this for determinism.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		transport: NewNetTransport(nil),
		logger:    zap.NewNop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes req and returns the decoded JSON object on success. Every
// failure is one of: *InvalidURLError, *InvalidBodyError,
// ErrInvalidResponse, *HTTPError, *HTTPErrorJSON, *DecodingError, or
// ErrInvalidResponseFormat. Nothing is retried or swallowed.
func (c *Client) Do(ctx context.Context, req Request) (*value.Object, error) {
	hreq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	requestID := hreq.Header.Get(requestIDHeader)
	c.logger.Debug("dispatching request",
		zap.String("method", hreq.Method),
		zap.String("url", hreq.URL.String()),
		zap.String("request_id", requestID),
	)

	resp, err := c.transport.RoundTrip(ctx, hreq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.logger.Debug("received response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Body)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyErrorBody(resp.StatusCode, resp.Body)
	}

	return decodeObjectBody(resp.Body)
}

// build validates and assembles the outgoing *http.Request from a Request
// descriptor. Shared by the buffered and streaming paths.
func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	u, err := parseURL(req.URL)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, err = req.Body.MarshalJSON()
		if err != nil {
			return nil, &InvalidBodyError{Cause: err}
		}
		body = bytes.NewReader(bodyBytes)
		c.logger.Debug("serialized request body",
			zap.String("body", utils.Truncate(string(bodyBytes), 512)),
		)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &InvalidURLError{URL: req.URL}
	}

	if req.Body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	hreq.Header.Set(requestIDHeader, c.newID())

	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}

	return hreq, nil
}

// parseURL enforces standard URI well-formedness: a scheme, a host, and no
// embedded unescaped whitespace.
func parseURL(raw string) (*url.URL, error) {
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return nil, &InvalidURLError{URL: raw}
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &InvalidURLError{URL: raw}
	}

	return u, nil
}

// classifyErrorBody maps a non-2xx response to *HTTPErrorJSON when the body
// is a JSON object, and *HTTPError with the raw bytes otherwise.
func classifyErrorBody(status int, body []byte) error {
	if v, err := value.Decode(body); err == nil {
		if obj, ok := v.AsObject(); ok {
			return &HTTPErrorJSON{StatusCode: status, Object: obj}
		}
	}
	return &HTTPError{StatusCode: status, Body: body}
}

// decodeObjectBody decodes a 2xx body. Malformed JSON is a *DecodingError;
// well-formed JSON of the wrong top-level shape is ErrInvalidResponseFormat.
// Callers branch on the distinction, so the two never collapse.
func decodeObjectBody(body []byte) (*value.Object, error) {
	v, err := value.Decode(body)
	if err != nil {
		return nil, &DecodingError{Cause: err}
	}

	obj, ok := v.AsObject()
	if !ok {
		return nil, ErrInvalidResponseFormat
	}

	return obj, nil
}
