package client_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/restful/pkg/client"
	"github.com/papercomputeco/restful/pkg/value"
)

var _ = Describe("Client.Do", func() {
	var (
		ctx    context.Context
		server *httptest.Server
	)

	BeforeEach(func() {
		ctx = context.Background()
	})

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	Context("on a 2xx response with a JSON object body", func() {
		It("returns the decoded object", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"name": "ada", "count": 3}`))
			}))

			c := client.New()
			obj, err := c.Do(ctx, client.Request{URL: server.URL, Method: http.MethodGet})
			Expect(err).NotTo(HaveOccurred())

			name, ok := value.Resolve(obj, "name")
			Expect(ok).To(BeTrue())
			Expect(name.Equal(value.String("ada"))).To(BeTrue())
		})
	})

	Context("request building", func() {
		It("serializes the body and defaults Content-Type to application/json", func() {
			var gotContentType string
			var gotBody []byte
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotContentType = r.Header.Get("Content-Type")
				buf := make([]byte, r.ContentLength)
				r.Body.Read(buf)
				gotBody = buf
				w.Write([]byte(`{}`))
			}))

			body := value.NewObject().Set("model", value.String("m1"))
			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: server.URL, Method: http.MethodPost, Body: body})
			Expect(err).NotTo(HaveOccurred())
			Expect(gotContentType).To(Equal("application/json"))
			Expect(string(gotBody)).To(Equal(`{"model":"m1"}`))
		})

		It("lets an explicit Content-Type header win over the default", func() {
			var gotContentType string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotContentType = r.Header.Get("Content-Type")
				w.Write([]byte(`{}`))
			}))

			c := client.New()
			_, err := c.Do(ctx, client.Request{
				URL:     server.URL,
				Method:  http.MethodPost,
				Body:    value.NewObject(),
				Headers: map[string]string{"Content-Type": "application/vnd.api+json"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(gotContentType).To(Equal("application/vnd.api+json"))
		})

		It("applies supplied headers and tags the request with an ID", func() {
			var gotAuth, gotRequestID string
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotRequestID = r.Header.Get("X-Request-Id")
				w.Write([]byte(`{}`))
			}))

			c := client.New(client.WithRequestIDs(func() string { return "req-123" }))
			_, err := c.Do(ctx, client.Request{
				URL:     server.URL,
				Headers: map[string]string{"Authorization": "Bearer tok"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(gotAuth).To(Equal("Bearer tok"))
			Expect(gotRequestID).To(Equal("req-123"))
		})

		It("rejects malformed URLs before any I/O", func() {
			c := client.New()

			for _, bad := range []string{"", "not a url", "/relative/only", "http://host with space/x"} {
				_, err := c.Do(ctx, client.Request{URL: bad})

				var urlErr *client.InvalidURLError
				Expect(errors.As(err, &urlErr)).To(BeTrue(), "url %q", bad)
				Expect(urlErr.URL).To(Equal(bad))
			}
		})

		It("rejects bodies that cannot serialize to JSON", func() {
			c := client.New()
			body := value.NewObject().Set("bad", value.Double(math.Inf(1)))

			_, err := c.Do(ctx, client.Request{URL: "http://localhost:1/x", Body: body})

			var bodyErr *client.InvalidBodyError
			Expect(errors.As(err, &bodyErr)).To(BeTrue())
			Expect(bodyErr.Unwrap()).To(HaveOccurred())
		})
	})

	Context("on a non-2xx response", func() {
		It("surfaces a JSON object body as HTTPErrorJSON", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message": "not found"}`))
			}))

			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: server.URL})

			var jsonErr *client.HTTPErrorJSON
			Expect(errors.As(err, &jsonErr)).To(BeTrue())
			Expect(jsonErr.StatusCode).To(Equal(http.StatusNotFound))

			msg, ok := value.Resolve(jsonErr.Object, "message")
			Expect(ok).To(BeTrue())
			Expect(msg.Equal(value.String("not found"))).To(BeTrue())
		})

		It("surfaces a non-JSON body as HTTPError with the raw bytes", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("plain text error"))
			}))

			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: server.URL})

			var httpErr *client.HTTPError
			Expect(errors.As(err, &httpErr)).To(BeTrue())
			Expect(httpErr.StatusCode).To(Equal(http.StatusNotFound))
			Expect(string(httpErr.Body)).To(Equal("plain text error"))
		})

		It("surfaces a JSON array error body as HTTPError, not HTTPErrorJSON", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`["e1", "e2"]`))
			}))

			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: server.URL})

			var httpErr *client.HTTPError
			Expect(errors.As(err, &httpErr)).To(BeTrue())
			Expect(httpErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("on a 2xx response with a bad body", func() {
		It("distinguishes a top-level array as ErrInvalidResponseFormat", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[1, 2, 3]`))
			}))

			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: server.URL})
			Expect(errors.Is(err, client.ErrInvalidResponseFormat)).To(BeTrue())

			var decErr *client.DecodingError
			Expect(errors.As(err, &decErr)).To(BeFalse())
		})

		It("surfaces malformed JSON as DecodingError", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"broken":`))
			}))

			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: server.URL})

			var decErr *client.DecodingError
			Expect(errors.As(err, &decErr)).To(BeTrue())
			Expect(errors.Is(err, client.ErrInvalidResponseFormat)).To(BeFalse())
		})
	})

	Context("when the transport cannot complete the exchange", func() {
		It("surfaces ErrInvalidResponse", func() {
			// A server that is already closed refuses connections.
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			target := server.URL
			server.Close()
			server = nil

			c := client.New()
			_, err := c.Do(ctx, client.Request{URL: target})
			Expect(errors.Is(err, client.ErrInvalidResponse)).To(BeTrue())
		})
	})
})
