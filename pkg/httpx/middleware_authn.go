package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/deptshare/pkg/jwtx"
	"github.com/aussiebroadwan/deptshare/pkg/slogx"
)

// ClaimsCheck runs after signature verification. Returning an error rejects
// the request as unauthenticated; revocation lookups plug in here.
type ClaimsCheck func(ctx context.Context, c jwtx.Claims) error

// AuthnMiddleware requires a valid bearer token and stores its claims on the
// request context.
func AuthnMiddleware(v jwtx.Verifier, checks ...ClaimsCheck) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			for _, check := range checks {
				if err := check(ctx, claims); err != nil {
					log.Warn("session rejected", "jti", claims.ID, "err", err)
					writeBearerError(w, "token revoked")
					return
				}
			}

			ctx = slogx.With(ctx, "account_id", claims.Subject, "department", claims.Department)
			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750 error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
