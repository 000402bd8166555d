package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/metrics"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/response"
)

type identityKey struct{}

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(raw string) (*auth.Identity, error)
}

// AdminChecker reports whether email holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// IdentityFromCtx returns the identity stored by RequireToken, or nil.
func IdentityFromCtx(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(identityKey{}).(*auth.Identity)
	return id
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// RequireToken rejects requests without a valid `Authorization: Bearer`
// token with 401 and stores the decoded identity for downstream handlers.
func RequireToken(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				deny(w, r, http.StatusUnauthorized, "missing_token")
				return
			}

			id, err := v.Verify(raw)
			if err != nil {
				deny(w, r, http.StatusUnauthorized, "invalid_token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin must run after RequireToken. The role is re-read through
// checker on every request.
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromCtx(r.Context())
			if id == nil {
				deny(w, r, http.StatusUnauthorized, "missing_token")
				return
			}

			admin, err := checker.IsAdmin(r.Context(), id.Email)
			if err != nil {
				logger.WithCtx(r.Context()).Error("admin lookup failed", "email", id.Email, "error", err)
				response.InternalError(w)
				return
			}
			if !admin {
				deny(w, r, http.StatusForbidden, "not_admin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf must run after RequireToken. It rejects with 403 unless the
// path parameter param equals the token's email.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromCtx(r.Context())
			if id == nil {
				deny(w, r, http.StatusUnauthorized, "missing_token")
				return
			}
			if id.Email == "" || PathParam(r, param) != id.Email {
				deny(w, r, http.StatusForbidden, "identity_mismatch")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PathParam returns the decoded value of a chi path parameter. chi matches
// against the escaped path whenever the request carried percent-escapes, so
// a%40x.com arrives here undecoded.
func PathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func deny(w http.ResponseWriter, r *http.Request, status int, reason string) {
	metrics.AuthDenied.WithLabelValues(reason).Inc()
	logger.WithCtx(r.Context()).Debug("request denied", "path", r.URL.Path, "reason", reason)

	if status == http.StatusForbidden {
		response.Forbidden(w)
		return
	}
	response.Unauthorized(w)
}
