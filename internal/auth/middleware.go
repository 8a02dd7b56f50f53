package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package.
// Using a package-private type (instead of a bare string) means no other
// package can read or shadow the claims we store in the request context.
type contextKey string

const claimsKey contextKey = "authClaims"

// RequireAuth enforces bearer-token authentication on protected routes.
//
// Per-request state machine:
//
//  1. Extract: read the Authorization header and require the form
//     "Bearer <token>". Missing header or wrong scheme → 401.
//  2. Verify: check the token signature. Any failure → 403.
//  3. Attach: put the decoded claims in the request context and continue.
//
// It is a pure gate — no side effects beyond rejecting or annotating the
// request, and deliberately no user lookup: a well-formed, correctly-signed
// token is accepted even if the user row has since been deleted. For the
// single-admin model the secret is the trust anchor, not the users table.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
// The scheme comparison is case-insensitive, matching RFC 7235.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// writeAuthError sends the rejection body without pulling in the handler
// package (which imports this one — keeping this local avoids the cycle).
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"message":"` + message + `"}`))
}

// ClaimsFromContext retrieves the verified token claims set by RequireAuth.
// Returns (nil, false) on routes that aren't behind the middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}
