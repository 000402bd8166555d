// Package ctx gives Bistro handlers a single request value instead of the
// (http.ResponseWriter, *http.Request) pair:
//
//	func (h *MenuController) Show(c *ctx.Context) {
//	    item, err := h.menu.Find(c.Context(), id)
//	    ...
//	    c.OK(item)
//	}
//
//	r.Get("/menu/{id}", "menu.show", ctx.Wrap(menu.Show))
package ctx

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/bind"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/middleware"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(&Context{W: w, R: r})
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // 0 = not written yet
}

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return middleware.PathParam(c.R, key)
}

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// RequireQuery returns a non-empty query value. When it is missing the 400
// is already written and ok is false.
func (c *Context) RequireQuery(key string) (v string, ok bool) {
	if v = c.Query(key); v == "" {
		c.BadRequest(key + " query parameter is required")
		return "", false
	}
	return v, true
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Identity is the verified caller, or nil on an ungated route.
func (c *Context) Identity() *auth.Identity {
	return middleware.IdentityFromCtx(c.Context())
}

// BindJSON decodes the JSON body into dest and runs validation. On failure
// the 400 or 422 response is already written and false is returned.
func (c *Context) BindJSON(dest any) bool {
	err := bind.JSON(c.R, dest)
	if err == nil {
		return true
	}
	var fe bind.FieldErrors
	if errors.As(err, &fe) {
		c.ValidationError(fe)
	} else {
		c.BadRequest(err.Error())
	}
	return false
}

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// OK writes v as a 200 body.
func (c *Context) OK(v any) {
	c.JSON(http.StatusOK, v)
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	c.status = code
	fmt.Fprintf(c.W, format, args...)
}

func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusUnprocessableEntity
	response.ValidationError(c.W, errs)
}

func (c *Context) BadRequest(message string) {
	c.Error(http.StatusBadRequest, message)
}

// InternalError logs err with the request logger and sends an opaque 500.
func (c *Context) InternalError(err error) {
	log := logger.WithCtx(c.Context())
	if id := c.Identity(); id != nil {
		log = log.With("caller", id.Email)
	}
	log.Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
	c.status = http.StatusInternalServerError
	response.InternalError(c.W)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
