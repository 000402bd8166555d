// Package kernel builds the HTTP handler of the Bistro API from its
// dependencies.
package kernel

import (
	"net/http"

	"github.com/masudmolla6/bistro-restaurant-server/app/routes"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/middleware"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/reqid"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/response"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/router"
)

// Options tune the global middleware stack.
type Options struct {
	CORSOrigins []string
}

// NewRouter returns a router with the global middleware installed and every
// API route registered.
func NewRouter(deps routes.Dependencies, opts Options) *router.Router {
	r := router.New()

	// Outermost first. Recovery runs inside AccessLog so a panic is logged
	// with its request id and still gets an access line with status 500.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware)
	r.Use(middleware.AccessLog("/healthz", "/metrics"))
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(opts.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	routes.RegisterAPI(r, deps)
	return r
}

// Handler is NewRouter(...).Handler().
func Handler(deps routes.Dependencies, opts Options) http.Handler {
	return NewRouter(deps, opts).Handler()
}
