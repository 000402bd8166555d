package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/bind"
)

type review struct {
	Name   string  `json:"name" validate:"required"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
}

func TestJSONValid(t *testing.T) {
	var in review
	require.NoError(t, bind.JSON(post(`{"name":"Jo","rating":4.5}`), &in))
	assert.Equal(t, review{Name: "Jo", Rating: 4.5}, in)
}

func TestJSONFieldErrors(t *testing.T) {
	var in review
	err := bind.JSON(post(`{"rating":9}`), &in)

	var fe bind.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "name")
	assert.Contains(t, fe, "rating")
	assert.True(t, strings.HasPrefix(err.Error(), "validation failed: name:"))
}

func TestJSONUnreadable(t *testing.T) {
	var in review
	assert.ErrorIs(t, bind.JSON(post(``), &in), bind.ErrEmptyBody)
	assert.ErrorIs(t, bind.JSON(post(`{"name":"a"} {"name":"b"}`), &in), bind.ErrTrailingData)

	err := bind.JSON(post(`{"name":`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	req := httptest.NewRequest(http.MethodPost, "/reviews", nil)
	req.Body = http.NoBody
	assert.ErrorIs(t, bind.JSON(req, &in), bind.ErrEmptyBody)
}

func TestJSONTooLarge(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "16")
	var in review
	err := bind.JSON(post(`{"name":"`+strings.Repeat("x", 64)+`"}`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
