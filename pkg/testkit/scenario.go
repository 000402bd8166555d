// Package testkit drives REST API tests from JSON scenario files.
//
// Each scenario describes:
//   - the request to fire (method, URL, body, optional caller identity)
//   - the expected status code and, optionally, the expected JSON body
//   - mock steps for outgoing HTTP calls, such as the payment gateway
//
// Scenario files live in a testdata directory next to the tests:
//
//	testdata/
//	  create_intent.json       ← scenario
//	  create_intent_req.json   ← request body
//	  create_intent_res.json   ← expected response body
//
// Example:
//
//	func TestAPI(t *testing.T) {
//	    runner := &testkit.Runner{Handler: h, Client: gatewayClient, TokenFor: mint}
//	    runner.RunDir(t, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline alternative to requestFileName
	Headers         map[string]string `json:"headers"`
	// AsUser sends a bearer token for this email, minted by Runner.TokenFor.
	AsUser string `json:"asUser"`

	// Response assertions
	ResponseFileName string          `json:"responseFileName"`
	ResponseBody     json.RawMessage `json:"responseBody"`
	ExpectedCode     int             `json:"expectedCode"`

	// IsMockRequired fails the scenario on any outgoing call without a
	// matching mock step.
	IsMockRequired  bool       `json:"isMockRequired"`
	NetUtilMockStep []MockStep `json:"netUtilMockStep"`

	dir string // directory of the scenario file
}

// MockStep describes one intercepted outgoing HTTP call.
type MockStep struct {
	// Method must be "httprequest".
	Method string `json:"method"`

	// IsMock: when false the step only documents the dependency and the
	// request falls through to the default response.
	IsMock bool `json:"isMock"`

	// A step matches when every non-empty matcher does. MatchURL is a
	// prefix of the outgoing URL; MatchBody is a substring of the request
	// body, such as a form field sent to the payment gateway.
	MatchURL    string `json:"matchUrl"`
	MatchMethod string `json:"matchMethod"`
	MatchBody   string `json:"matchBody"`

	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic response for a mock step.
type MockReturnData struct {
	// StatusCode defaults to 200.
	StatusCode int `json:"statusCode"`
	// Body is base64-encoded. JSON is the readable alternative; set one.
	Body string          `json:"body"`
	JSON json.RawMessage `json:"json"`
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestFileName != "" && len(s.RequestBody) > 0 {
		return fmt.Errorf("requestFileName and requestBody are mutually exclusive")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	for i, step := range s.NetUtilMockStep {
		if step.Method != "httprequest" {
			return fmt.Errorf("netUtilMockStep[%d].method must be \"httprequest\"", i)
		}
		if step.ReturnData.Body != "" && len(step.ReturnData.JSON) > 0 {
			return fmt.Errorf("netUtilMockStep[%d].returnData: body and json are mutually exclusive", i)
		}
	}
	return nil
}

// RequestBodyPath returns the absolute path of the request body file, or "".
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path of the expected response file,
// or "".
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadAllFromDir loads every scenario file in dir, sorted by file name.
// Files ending in _req.json or _res.json are bodies, not scenarios.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, []error{fmt.Errorf("testkit: glob %q: %w", dir, err)}
	}
	sort.Strings(entries)

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("testkit: no scenario files found in %q", dir))
	}
	return scenarios, errs
}

func isBodyFile(path string) bool {
	return strings.HasSuffix(path, "_req.json") || strings.HasSuffix(path, "_res.json")
}
