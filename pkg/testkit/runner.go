package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// Runner fires scenarios at Handler.
type Runner struct {
	Handler http.Handler

	// Client is the outgoing HTTP client used by the code under test. Its
	// Transport is swapped for a MockTransport during each scenario.
	// Nil means the scenario's mock steps are not installed.
	Client *http.Client

	// TokenFor mints the bearer token for a scenario's asUser.
	TokenFor func(email string) (string, error)
}

// Run executes the scenario in the file at path as a subtest.
func (r *Runner) Run(t *testing.T, path string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}
	t.Run(s.Name, func(t *testing.T) { r.runScenario(t, s) })
}

// RunDir runs every scenario in dir, in file-name order, as subtests.
// Scenarios share the handler, so later files may depend on state left by
// earlier ones.
func (r *Runner) RunDir(t *testing.T, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Errorf("%v", err)
	}
	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) { r.runScenario(t, s) })
	}
}

// ─── Internal execution ───────────────────────────────────────────────────────

// runScenario:
//  1. builds the request body
//  2. installs the mock transport on Client
//  3. fires the request through httptest
//  4. asserts status code, body and mock usage
func (r *Runner) runScenario(t *testing.T, s *Scenario) {
	t.Helper()

	var reqBody io.Reader
	switch p := s.RequestBodyPath(); {
	case p != "":
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read request file %q: %v", s.Name, p, err)
		}
		reqBody = bytes.NewReader(data)
	case len(s.RequestBody) > 0:
		reqBody = bytes.NewReader(s.RequestBody)
	}

	mt := NewMockTransport(s)
	if r.Client != nil {
		original := r.Client.Transport
		r.Client.Transport = mt
		defer func() { r.Client.Transport = original }()
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.AsUser != "" {
		if r.TokenFor == nil {
			t.Fatalf("[%s] asUser set but Runner.TokenFor is nil", s.Name)
		}
		token, err := r.TokenFor(s.AsUser)
		if err != nil {
			t.Fatalf("[%s] mint token: %v", s.Name, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.Handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.Bytes())

	expected := []byte(s.ResponseBody)
	if p := s.ResponseBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		}
		expected = data
	}
	AssertJSONBody(t, s, expected, rec.Body.Bytes())

	if r.Client != nil {
		AssertMocksAllCalled(t, s, mt)
	}
}
