package payment_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/payment"
)

func TestAmountFromPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{12.34, 1234},
		{0.29, 29}, // 0.29*100 is 28.999999999999996 in float64
		{19.999, 2000},
		{0.01, 1},
	}
	for _, tc := range cases {
		got, err := payment.AmountFromPrice(tc.price)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "price %v", tc.price)
	}

	for _, bad := range []float64{0, -5, 0.004, math.NaN(), math.Inf(1)} {
		_, err := payment.AmountFromPrice(bad)
		assert.ErrorIs(t, err, payment.ErrInvalidAmount, "price %v", bad)
	}
}

func stubStripe(t *testing.T, handler http.HandlerFunc) *payment.Stripe {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return payment.NewStripe("sk_test_123", &stripe.Backends{API: backend})
}

func TestStripeCreateIntent(t *testing.T) {
	var form url.Values
	gw := stubStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","object":"payment_intent","amount":1234,"currency":"usd","client_secret":"pi_1_secret_abc"}`)) //nolint:errcheck
	})

	intent, err := gw.CreateIntent(context.Background(), 1234, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(1234), intent.Amount)

	assert.Equal(t, "1234", form.Get("amount"))
	assert.Equal(t, "usd", form.Get("currency"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
}

func TestStripeErrorPropagates(t *testing.T) {
	gw := stubStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Amount must be at least 50 cents"}}`)) //nolint:errcheck
	})

	_, err := gw.CreateIntent(context.Background(), 10, "usd")
	require.Error(t, err)

	var serr *stripe.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.HTTPStatusCode)
}
