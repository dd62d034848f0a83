// Package api is the transport adapter between the state containers and the
// storefront backend.
//
// It owns three things the rest of the module must never see: the endpoint
// URLs and payload shapes, the inconsistent response envelopes (bare arrays
// vs {items:...} vs {orders:...} — normalized here into typed results), and
// the mapping from HTTP statuses onto the error taxonomy in errors.go.
package api

import (
	"context"
	"encoding/json"
	gohttp "net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/shashiranjanraj/dokon/config"
	"github.com/shashiranjanraj/dokon/pkg/http"
	"github.com/shashiranjanraj/dokon/pkg/logger"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
	"github.com/shashiranjanraj/dokon/pkg/reqid"
)

// Client is a session-scoped handle on the backend: one cookie jar, one
// optional bearer token, one base URL. Safe for concurrent use.
type Client struct {
	base    string
	http    *gohttp.Client
	timeout time.Duration
	retries int

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Tests use this to
// install a testkit.MockTransport; note a replaced client brings its own
// cookie jar (or none).
func WithHTTPClient(c *gohttp.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithRetries sets the total attempt count for each call (1 = no retry).
func WithRetries(n int) Option {
	return func(cl *Client) {
		if n >= 1 {
			cl.retries = n
		}
	}
}

// New builds a Client for the given backend root (no trailing slash).
// The default underlying client carries a cookie jar so the backend's
// session cookie is held and re-sent automatically.
func New(base string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		base:    base,
		http:    &gohttp.Client{Jar: jar},
		timeout: config.APITimeout(),
		retries: config.APIRetries(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the bearer token attached to subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token ("" when logged out).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClearToken drops the bearer token.
func (c *Client) ClearToken() { c.SetToken("") }

// ─── Request plumbing ─────────────────────────────────────────────────────────

// call runs one API call: request ID, bearer token, metrics, error mapping.
// resource is the metrics label ("cart", "orders", ...). A non-2xx response
// comes back as a mapped *Error; the raw response is returned only on 2xx.
func (c *Client) call(ctx context.Context, method, resource, path string, body any, query map[string]string) (*http.Response, error) {
	ctx, id := reqid.Ensure(ctx)
	log := logger.L.With("request_id", id)

	req := http.Get(c.base + path)
	switch method {
	case gohttp.MethodPost:
		req = http.Post(c.base + path)
	case gohttp.MethodPut:
		req = http.Put(c.base + path)
	case gohttp.MethodDelete:
		req = http.Delete(c.base + path)
	}

	req.Via(c.http).
		WithContext(logger.Inject(ctx, log)).
		Header(reqid.Header, id).
		Timeout(c.timeout).
		Retry(c.retries, 500*time.Millisecond)

	if token := c.Token(); token != "" {
		req.Bearer(token)
	}
	if body != nil {
		req.Body(body)
	}
	for k, v := range query {
		req.Query(k, v)
	}

	metrics.RequestInFlight.Inc()
	start := time.Now()
	resp, err := req.Send()
	metrics.RequestInFlight.Dec()

	if err != nil {
		metrics.ObserveAPICall(resource, method, 0, start)
		log.Warn("api: transport failure", "method", method, "path", path, "error", err)
		return nil, networkError(err)
	}

	metrics.ObserveAPICall(resource, method, resp.StatusCode, start)

	if !resp.OK() {
		apiErr := fromStatus(resp.StatusCode, errorMessage(resp.Raw))
		log.Debug("api: backend rejected call",
			"method", method, "path", path, "status", resp.StatusCode, "kind", apiErr.Kind)
		return nil, apiErr
	}

	return resp, nil
}

// errorMessage pulls the backend's human-readable message out of an error
// body; both {"message": ...} and {"error": ...} shapes occur.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// ─── Envelope normalization ───────────────────────────────────────────────────

// decodeList accepts either a bare JSON array or an {key: [...]} envelope
// and always yields a typed slice. The backend is inconsistent per resource;
// that inconsistency stops here.
func decodeList[T any](resp *http.Response, key string) ([]T, error) {
	var bare []T
	if err := resp.JSON(&bare); err == nil {
		return bare, nil
	}

	var envelope map[string]json.RawMessage
	if err := resp.JSON(&envelope); err != nil {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed list response", err: err}
	}
	raw, ok := envelope[key]
	if !ok {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: "list response missing " + key}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed " + key + " payload", err: err}
	}
	return out, nil
}

// decodeObject accepts either a bare JSON object or an {key: {...}} envelope.
func decodeObject[T any](resp *http.Response, key string) (T, error) {
	var zero T

	var envelope map[string]json.RawMessage
	if err := resp.JSON(&envelope); err == nil {
		if raw, ok := envelope[key]; ok {
			var out T
			if err := json.Unmarshal(raw, &out); err == nil {
				return out, nil
			}
		}
	}

	var bare T
	if err := resp.JSON(&bare); err != nil {
		return zero, &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed response", err: err}
	}
	return bare, nil
}
