// Package testkit provides test doubles for code that talks to the
// storefront backend.
//
// MockTransport implements http.RoundTripper with an in-code script of
// steps, so store tests never open a socket:
//
//	mt := testkit.NewMockTransport(
//	    testkit.Step{Method: "POST", Path: "/cart", Status: 200, Body: map[string]any{"ok": true}},
//	    testkit.Step{Method: "GET", Path: "/cart", Body: map[string]any{"items": []any{}}},
//	)
//	client := api.New(base, api.WithHTTPClient(testkit.Client(mt)))
//	// ... run test ...
//	mt.AssertAllCalled(t)
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Step describes one expected outgoing request and the synthetic response
// it receives. Zero values are wildcards: an empty Method or Path matches
// any request, Status 0 means 200.
type Step struct {
	Method string
	Path   string // prefix match against the request URL path
	Status int
	Body   any   // marshalled to JSON; a string is sent raw
	Times  int   // max matches for this step; 0 = unlimited
	Err    error // when set, the step fails at the transport level instead
}

// Call records one intercepted request.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type stepEntry struct {
	step  Step
	calls int
}

// MockTransport matches outgoing requests against its steps in order and
// returns synthetic responses instead of making network calls.
type MockTransport struct {
	mu     sync.Mutex
	steps  []*stepEntry
	strict bool
	calls  []Call
}

// NewMockTransport builds a MockTransport from the given steps.
func NewMockTransport(steps ...Step) *MockTransport {
	mt := &MockTransport{}
	for _, s := range steps {
		mt.steps = append(mt.steps, &stepEntry{step: s})
	}
	return mt
}

// Strict makes unmatched requests fail at the transport level instead of
// receiving a generic 404.
func (mt *MockTransport) Strict() *MockTransport {
	mt.strict = true
	return mt
}

// Client wraps mt in an *http.Client ready to hand to the API client.
func Client(mt *MockTransport) *http.Client {
	return &http.Client{Transport: mt}
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	mt.calls = append(mt.calls, Call{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Body:   body,
	})

	for _, entry := range mt.steps {
		if !entry.matches(req) {
			continue
		}
		entry.calls++
		if entry.step.Err != nil {
			return nil, entry.step.Err
		}
		return buildResponse(req, entry.step)
	}

	if mt.strict {
		return nil, fmt.Errorf("testkit: unexpected outgoing call %s %s — no matching step", req.Method, req.URL)
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       io.NopCloser(strings.NewReader(`{"message":"no mock configured"}`)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// Calls returns a snapshot of every intercepted request, in order.
func (mt *MockTransport) Calls() []Call {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]Call, len(mt.calls))
	copy(out, mt.calls)
	return out
}

// CallCount returns how many intercepted requests matched method and path
// prefix. Empty strings are wildcards.
func (mt *MockTransport) CallCount(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	n := 0
	for _, c := range mt.calls {
		if (method == "" || c.Method == method) && (path == "" || strings.HasPrefix(c.Path, path)) {
			n++
		}
	}
	return n
}

// Unused returns a description of every step that was never matched.
func (mt *MockTransport) Unused() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	var out []string
	for _, e := range mt.steps {
		if e.calls == 0 {
			out = append(out, fmt.Sprintf("%s %s", e.step.Method, e.step.Path))
		}
	}
	return out
}

func (e *stepEntry) matches(req *http.Request) bool {
	s := e.step
	if s.Times > 0 && e.calls >= s.Times {
		return false
	}
	if s.Method != "" && !strings.EqualFold(s.Method, req.Method) {
		return false
	}
	if s.Path != "" && !strings.HasPrefix(req.URL.Path, s.Path) {
		return false
	}
	return true
}

func buildResponse(req *http.Request, s Step) (*http.Response, error) {
	code := s.Status
	if code == 0 {
		code = http.StatusOK
	}

	var raw []byte
	switch b := s.Body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	default:
		var err error
		raw, err = json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("testkit: marshal mock body: %w", err)
		}
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(raw)),
		Request:    req,
	}, nil
}
