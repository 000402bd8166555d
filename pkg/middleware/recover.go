package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/response"
)

// Recovery turns a handler panic into the 500 envelope. When the handler had
// already started its response only the log line is written; the client
// sees a truncated body.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := wrap(w)
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprint(v),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
				"committed", rw.status != 0,
			)
			if rw.status == 0 {
				response.InternalError(rw)
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
