// Package router is a chi mux that remembers what it serves: every route is
// registered under a name together with the gates in front of it, so the
// access table can be printed by `bistro route:list` and checked in tests.
package router

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// Gate is a named per-route middleware.
type Gate struct {
	Name string
	Wrap Middleware
}

// NewGate names mw.
func NewGate(name string, mw Middleware) Gate {
	return Gate{Name: name, Wrap: mw}
}

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
	Gates  []string
}

type Router struct {
	mux   chi.Router
	mu    sync.RWMutex
	table []RouteInfo
}

func New() *Router {
	return &Router{mux: chi.NewRouter()}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// Use installs global middleware. It must be called before any route.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(h http.HandlerFunc) {
	r.mux.NotFound(h)
}

// MethodNotAllowed sets the handler for a matched path with the wrong method.
func (r *Router) MethodNotAllowed(h http.HandlerFunc) {
	r.mux.MethodNotAllowed(h)
}

func (r *Router) Get(path, name string, h http.HandlerFunc, gates ...Gate) {
	r.add(http.MethodGet, path, name, h, gates)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, gates ...Gate) {
	r.add(http.MethodPost, path, name, h, gates)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, gates ...Gate) {
	r.add(http.MethodPatch, path, name, h, gates)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, gates ...Gate) {
	r.add(http.MethodDelete, path, name, h, gates)
}

// Handle mounts a plain http.Handler for GET, such as /metrics.
func (r *Router) Handle(path, name string, h http.Handler) {
	r.add(http.MethodGet, path, name, h, nil)
}

// Routes returns every registered route sorted by path then method.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	out := append([]RouteInfo(nil), r.table...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Lookup returns the route registered under name.
func (r *Router) Lookup(name string) (RouteInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ri := range r.table {
		if ri.Name == name {
			return ri, true
		}
	}
	return RouteInfo{}, false
}

func (r *Router) add(method, path, name string, h http.Handler, gates []Gate) {
	path = clean(path)

	// The first gate is the outermost.
	names := make([]string, len(gates))
	for i := len(gates) - 1; i >= 0; i-- {
		h = gates[i].Wrap(h)
		names[i] = gates[i].Name
	}
	r.mux.Method(method, path, h)

	r.mu.Lock()
	r.table = append(r.table, RouteInfo{Method: method, Path: path, Name: name, Gates: names})
	r.mu.Unlock()
}

func clean(path string) string {
	return "/" + strings.Trim(path, "/")
}
