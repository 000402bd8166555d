package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
	appctx "github.com/masudmolla6/bistro-restaurant-server/pkg/ctx"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/middleware"
)

func serve(method, path, body string, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestOKWritesPlainBody(t *testing.T) {
	rec := serve(http.MethodGet, "/", "", func(c *appctx.Context) {
		c.OK(map[string]any{"users": 3})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":3}`, rec.Body.String())
}

func TestParamFromChi(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/menu/{id}", appctx.Wrap(func(c *appctx.Context) {
		got = c.Param("id")
		c.OK(nil)
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu/642c155b", nil))
	assert.Equal(t, "642c155b", got)
}

func TestBindJSON(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"required,email"`
	}

	t.Run("malformed", func(t *testing.T) {
		rec := serve(http.MethodPost, "/", `{bad`, func(c *appctx.Context) {
			var in input
			assert.False(t, c.BindJSON(&in))
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid", func(t *testing.T) {
		rec := serve(http.MethodPost, "/", `{"email":"nope"}`, func(c *appctx.Context) {
			var in input
			assert.False(t, c.BindJSON(&in))
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email"`)
	})

	t.Run("valid", func(t *testing.T) {
		serve(http.MethodPost, "/", `{"email":"a@b.io"}`, func(c *appctx.Context) {
			var in input
			assert.True(t, c.BindJSON(&in))
			assert.Equal(t, "a@b.io", in.Email)
		})
	})
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := serve(http.MethodGet, "/", "", func(c *appctx.Context) {
		c.InternalError(errors.New("connection refused"))
		assert.Equal(t, http.StatusInternalServerError, c.WrittenStatus())
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRequireQuery(t *testing.T) {
	rec := serve(http.MethodGet, "/carts", "", func(c *appctx.Context) {
		_, ok := c.RequireQuery("email")
		assert.False(t, ok)
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":400,"message":"email query parameter is required"}`, rec.Body.String())

	serve(http.MethodGet, "/carts?email=a@b.io", "", func(c *appctx.Context) {
		v, ok := c.RequireQuery("email")
		assert.True(t, ok)
		assert.Equal(t, "a@b.io", v)
	})
}

func TestIdentity(t *testing.T) {
	serve(http.MethodGet, "/", "", func(c *appctx.Context) {
		assert.Nil(t, c.Identity())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), &auth.Identity{Email: "a@b.io"}))
	appctx.Wrap(func(c *appctx.Context) {
		require.NotNil(t, c.Identity())
		assert.Equal(t, "a@b.io", c.Identity().Email)
	})(rec, req)
}
