// Package tenant resolves the tenant for each request from the X-Tenant-Id
// header and carries it through the request context.
package tenant

import (
	"context"
	"net/http"
	"regexp"
)

// Header names the request header carrying the tenant identifier.
const Header = "X-Tenant-Id"

// idPattern bounds tenant identifiers: 1-64 chars of [a-zA-Z0-9_-].
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

type contextKey struct{}

// Valid reports whether id is an acceptable tenant identifier.
func Valid(id string) bool {
	return idPattern.MatchString(id)
}

// FromContext returns the tenant resolved for this request, or "" when the
// middleware did not run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// WithTenant returns ctx carrying the tenant id. Exported for tests and
// non-HTTP callers.
func WithTenant(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware resolves the tenant header. A missing header falls back to
// defaultID; a malformed one is rejected before reaching any handler.
func Middleware(defaultID string, onInvalid func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = defaultID
			}
			if !Valid(id) {
				if onInvalid != nil {
					onInvalid(w, r)
				} else {
					http.Error(w, "invalid tenant id", http.StatusBadRequest)
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), id)))
		})
	}
}
