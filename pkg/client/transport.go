package client

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Transport performs the actual HTTP exchange for a built request. It is a
// constructor-injected collaborator: pooling, retries, TLS, and timeouts all
// live behind this interface, never in the client itself.
type Transport interface {
	// RoundTrip performs a one-shot request and returns the fully buffered
	// response body.
	RoundTrip(ctx context.Context, req *http.Request) (*BufferedResponse, error)

	// OpenStream performs a request and returns a live byte source bound to
	// the open connection. The caller owns the body and must close it.
	OpenStream(ctx context.Context, req *http.Request) (*StreamBody, error)
}

// BufferedResponse is the response envelope for one-shot requests.
type BufferedResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StreamBody is the response envelope for streaming requests. Body is
// exclusively owned by the consumer; closing it releases the underlying
// connection.
type StreamBody struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// defaultTimeout bounds buffered requests made through a NetTransport that
// was constructed without an *http.Client. Streaming requests are long
// lived, so the zero-timeout client is used there and lifetime is governed
// by the request context.
const defaultTimeout = 60 * time.Second

// NetTransport adapts *http.Client to the Transport contract.
type NetTransport struct {
	buffered  *http.Client
	streaming *http.Client
}

// NewNetTransport returns a Transport backed by hc. Passing nil uses a
// client with a 60s request timeout for buffered calls and an untimed
// client for streams.
func NewNetTransport(hc *http.Client) *NetTransport {
	if hc != nil {
		return &NetTransport{buffered: hc, streaming: hc}
	}
	return &NetTransport{
		buffered:  &http.Client{Timeout: defaultTimeout},
		streaming: &http.Client{},
	}
}

func (t *NetTransport) RoundTrip(ctx context.Context, req *http.Request) (*BufferedResponse, error) {
	resp, err := t.buffered.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &BufferedResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (t *NetTransport) OpenStream(ctx context.Context, req *http.Request) (*StreamBody, error) {
	resp, err := t.streaming.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return &StreamBody{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}
