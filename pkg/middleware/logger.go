package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/reqid"
)

// recorder remembers what a handler wrote so the access log and Recovery
// can see it after the fact.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *recorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func (rw *recorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

func wrap(w http.ResponseWriter) *recorder {
	if rw, ok := w.(*recorder); ok {
		return rw
	}
	return &recorder{ResponseWriter: w}
}

// AccessLog tags the request context with a request-scoped logger and writes
// one line per request. 5xx lines are errors and 4xx lines are warnings.
// Successful requests to a quiet path (probes, scrapes) are not logged.
//
// reqid.Middleware must run first.
func AccessLog(quiet ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
			r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

			rw := wrap(w)
			next.ServeHTTP(rw, r)

			status := rw.status
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			case skip[r.URL.Path]:
				return
			}

			reqLog.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", rw.bytes,
				"duration", time.Since(start).String(),
				"ip", r.RemoteAddr,
			)
		})
	}
}
