package http

import (
	"context"
	"net/http"
	"strings"

	"vitien/internal/apperr"
	"vitien/internal/middleware/tenant"
	"vitien/internal/token"
)

type claimsKey struct{}

// claimsFromContext returns the verified token claims for this request.
func claimsFromContext(ctx context.Context) (token.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(token.Claims)
	return c, ok
}

// authenticated guards a handler behind bearer-token auth. The token's tenant
// must match the request's resolved tenant: a valid token from another tenant
// is forbidden, not merely unauthorized.
func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			respondError(w, r, apperr.Unauthorized("missing bearer token"))
			return
		}

		claims, err := s.tokens.Verify(raw)
		if err != nil {
			respondError(w, r, apperr.Unauthorized("invalid or expired token"))
			return
		}

		if claims.TenantID != tenant.FromContext(r.Context()) {
			respondError(w, r, apperr.Forbidden("token does not belong to this tenant"))
			return
		}

		if _, err := s.auth.ResolveUser(r.Context(), claims.TenantID, claims.UserID); err != nil {
			respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
