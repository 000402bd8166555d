package testkit_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/testkit"
)

// testApp answers /healthz directly and /quote by calling an upstream
// through client.
func testApp(client *http.Client) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		resp, err := client.Post("https://upstream.test/v1/quotes", "application/json", r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		defer resp.Body.Close()

		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		out["user"] = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer token-for-")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out) //nolint:errcheck
	})
	return mux
}

func TestRunDir(t *testing.T) {
	client := &http.Client{}
	runner := &testkit.Runner{
		Handler: testApp(client),
		Client:  client,
		TokenFor: func(email string) (string, error) {
			return "token-for-" + email, nil
		},
	}
	runner.RunDir(t, "testdata")
}

func TestLoadScenario(t *testing.T) {
	s, err := testkit.LoadScenario("testdata/echo_quote.json")
	require.NoError(t, err)

	assert.Equal(t, "Quote through upstream", s.Name)
	assert.Equal(t, "POST", s.RequestMethod)
	assert.Equal(t, 200, s.ExpectedCode)
	assert.Equal(t, "a@x.com", s.AsUser)
	assert.True(t, s.IsMockRequired)
	require.Len(t, s.NetUtilMockStep, 1)
	assert.Equal(t, "https://upstream.test/v1/quotes", s.NetUtilMockStep[0].MatchURL)
	assert.True(t, strings.HasSuffix(s.RequestBodyPath(), "echo_quote_req.json"))
}

func TestLoadAllFromDirSkipsBodies(t *testing.T) {
	scenarios, errs := testkit.LoadAllFromDir("testdata")
	assert.Empty(t, errs)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "Quote through upstream", scenarios[0].Name)
	assert.Equal(t, "Health check", scenarios[1].Name)
}

func TestMockTransportMatchesAndRecords(t *testing.T) {
	s := &testkit.Scenario{
		IsMockRequired: true,
		NetUtilMockStep: []testkit.MockStep{{
			Method:   "httprequest",
			IsMock:   true,
			MatchURL: "https://api.example.com/",
			ReturnData: testkit.MockReturnData{
				StatusCode: 201,
				Body:       "eyJvayI6dHJ1ZX0=", // {"ok":true}
			},
		}},
	}
	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodPost, "https://api.example.com/users", strings.NewReader("amount=5"))
	resp, err := mt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	calls := mt.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "amount=5", calls[0].Body)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestMockTransportUnmatched(t *testing.T) {
	s := &testkit.Scenario{
		IsMockRequired: true,
		NetUtilMockStep: []testkit.MockStep{{
			Method:   "httprequest",
			IsMock:   true,
			MatchURL: "https://expected.com/",
		}},
	}
	mt := testkit.NewMockTransport(s)

	_, err := mt.RoundTrip(httptest.NewRequest(http.MethodGet, "https://unexpected.com/api", nil))
	assert.Error(t, err)
	assert.Len(t, mt.AssertAllCalled(), 1)

	s.IsMockRequired = false
	resp, err := testkit.NewMockTransport(s).RoundTrip(httptest.NewRequest(http.MethodGet, "https://unexpected.com/api", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssertJSONBody(t *testing.T) {
	s := &testkit.Scenario{Name: "json assert"}
	testkit.AssertJSONBody(t, s, []byte(`{"name":"Ana","price":30}`), []byte(`{"price":  30, "name": "Ana"}`))
}

func TestMockTransportMatchesMethodAndBody(t *testing.T) {
	s := &testkit.Scenario{
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:      "httprequest",
				IsMock:      true,
				MatchURL:    "https://api.example.com/v1/payment_intents",
				MatchMethod: "POST",
				MatchBody:   "amount=1250",
				ReturnData:  testkit.MockReturnData{JSON: json.RawMessage(`{"id":"pi_1"}`)},
			},
			{
				Method:     "httprequest",
				IsMock:     true,
				MatchURL:   "https://api.example.com/v1/payment_intents",
				ReturnData: testkit.MockReturnData{StatusCode: 400, JSON: json.RawMessage(`{"error":{}}`)},
			},
		},
	}
	mt := testkit.NewMockTransport(s)

	resp, err := mt.RoundTrip(httptest.NewRequest(http.MethodPost, "https://api.example.com/v1/payment_intents", strings.NewReader("amount=1250&currency=usd")))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":"pi_1"}`, string(body))

	resp, err = mt.RoundTrip(httptest.NewRequest(http.MethodPost, "https://api.example.com/v1/payment_intents", strings.NewReader("amount=99")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestMockTransportDescribesMissedStep(t *testing.T) {
	mt := testkit.NewMockTransport(&testkit.Scenario{
		NetUtilMockStep: []testkit.MockStep{{
			Method: "httprequest", IsMock: true, MatchURL: "https://x.test/", MatchBody: "currency=usd",
		}},
	})
	errs := mt.AssertAllCalled()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `body~"currency=usd"`)
}
