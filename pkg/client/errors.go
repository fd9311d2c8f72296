package client

import (
	"errors"
	"fmt"

	"github.com/papercomputeco/restful/pkg/value"
)

var (
	// ErrInvalidResponse indicates the transport could not produce a
	// well-formed HTTP response envelope at all.
	ErrInvalidResponse = errors.New("transport returned an invalid response")

	// ErrInvalidResponseFormat indicates a 2xx body that is syntactically
	// valid JSON but not an object at the top level (e.g. a bare array).
	ErrInvalidResponseFormat = errors.New("response JSON is not an object")
)

// InvalidURLError indicates the request URL failed well-formedness checks
// before any I/O happened.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q", e.URL)
}

// InvalidBodyError indicates the request body could not be serialized to
// JSON (e.g. a non-finite number).
type InvalidBodyError struct {
	Cause error
}

func (e *InvalidBodyError) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *InvalidBodyError) Unwrap() error { return e.Cause }

// HTTPError indicates a status outside [200,299] whose body is not a JSON
// object. Body holds the raw response bytes; it is empty on the streaming
// path, where error bodies are not read.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// HTTPErrorJSON indicates a status outside [200,299] whose body parsed as a
// JSON object, preserved for callers that branch on structured error
// payloads.
type HTTPErrorJSON struct {
	StatusCode int
	Object     *value.Object
}

func (e *HTTPErrorJSON) Error() string {
	return fmt.Sprintf("http error: status %d (json body)", e.StatusCode)
}

// DecodingError indicates a 2xx body that failed to parse as JSON at all.
// A syntactically valid non-object body is ErrInvalidResponseFormat
// instead; the two are deliberately distinct.
type DecodingError struct {
	Cause error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Cause)
}

func (e *DecodingError) Unwrap() error { return e.Cause }
