package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/router"
)

func TestGateOrder(t *testing.T) {
	var trail []string
	mark := func(tag string) router.Gate {
		return router.NewGate(tag, func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, tag)
				next.ServeHTTP(w, r)
			})
		})
	}

	r := router.New()
	r.Delete("/users/{id}", "users.destroy", func(w http.ResponseWriter, r *http.Request) {
		trail = append(trail, "handler")
		w.WriteHeader(http.StatusNoContent)
	}, mark("token"), mark("admin"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/abc", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"token", "admin", "handler"}, trail)

	ri, ok := r.Lookup("users.destroy")
	require.True(t, ok)
	assert.Equal(t, []string{"token", "admin"}, ri.Gates)
}

func TestGateShortCircuits(t *testing.T) {
	deny := router.NewGate("token", func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	called := false

	r := router.New()
	r.Get("/admin-stats", "stats.admin", func(http.ResponseWriter, *http.Request) { called = true }, deny)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin-stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRoutesSorted(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	r := router.New()
	r.Post("menu/", "menu.store", noop)
	r.Get("/menu", "menu.index", noop)
	r.Get("", "home", noop)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: "GET", Path: "/", Name: "home", Gates: []string{}}, routes[0])
	assert.Equal(t, "GET", routes[1].Method)
	assert.Equal(t, "/menu", routes[2].Path)
	assert.Equal(t, "POST", routes[2].Method)

	_, ok := r.Lookup("nope")
	assert.False(t, ok)
}
