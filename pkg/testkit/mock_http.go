package testkit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport is an http.RoundTripper that answers outgoing requests from
// a scenario's mock steps. Runner installs it on the client the code under
// test uses, such as the payment gateway's backend client.
type MockTransport struct {
	mu      sync.Mutex
	steps   []MockStep
	hits    []int
	require bool
	calls   []RecordedCall
}

// RecordedCall is one request seen by a MockTransport.
type RecordedCall struct {
	Method string
	URL    string
	Body   string
}

func NewMockTransport(s *Scenario) *MockTransport {
	return &MockTransport{
		steps:   s.NetUtilMockStep,
		hits:    make([]int, len(s.NetUtilMockStep)),
		require: s.IsMockRequired,
	}
}

// RoundTrip records req and answers with the first matching mock step.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	call := RecordedCall{Method: req.Method, URL: req.URL.String(), Body: string(body)}

	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.calls = append(mt.calls, call)

	for i, step := range mt.steps {
		if step.IsMock && step.matches(call) {
			mt.hits[i]++
			return respond(req, step.ReturnData)
		}
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected outgoing %s %s, no matching mock step", call.Method, call.URL)
	}
	return respond(req, MockReturnData{
		StatusCode: http.StatusNotFound,
		JSON:       []byte(`{"error":{"message":"no mock configured"}}`),
	})
}

// Calls returns every request seen so far.
func (mt *MockTransport) Calls() []RecordedCall {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]RecordedCall(nil), mt.calls...)
}

// AssertAllCalled reports every isMock=true step that was never triggered.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for i, step := range mt.steps {
		if step.IsMock && mt.hits[i] == 0 {
			errs = append(errs, fmt.Errorf("testkit: mock step %s was never called", step.describe()))
		}
	}
	return errs
}

func (s MockStep) matches(c RecordedCall) bool {
	if s.MatchURL != "" && !strings.HasPrefix(c.URL, s.MatchURL) {
		return false
	}
	if s.MatchMethod != "" && !strings.EqualFold(s.MatchMethod, c.Method) {
		return false
	}
	return s.MatchBody == "" || strings.Contains(c.Body, s.MatchBody)
}

func (s MockStep) describe() string {
	parts := []string{}
	if s.MatchMethod != "" {
		parts = append(parts, "method="+s.MatchMethod)
	}
	parts = append(parts, fmt.Sprintf("url=%q", s.MatchURL))
	if s.MatchBody != "" {
		parts = append(parts, fmt.Sprintf("body~%q", s.MatchBody))
	}
	return strings.Join(parts, " ")
}

func respond(req *http.Request, rd MockReturnData) (*http.Response, error) {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	body := []byte(rd.JSON)
	if rd.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(rd.Body)
		if err != nil {
			if decoded, err = base64.RawStdEncoding.DecodeString(rd.Body); err != nil {
				return nil, fmt.Errorf("testkit: base64 decode mock body: %w", err)
			}
		}
		body = decoded
	}

	return &http.Response{
		StatusCode:    code,
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:        http.Header{"Content-Type": {"application/json"}},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
