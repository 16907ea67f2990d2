package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/arden-cole/portfoliobackend/auth"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// PrincipalContextKey is the key used to store the authenticated
	// principal in the request context.
	PrincipalContextKey ContextKey = "principal"
)

// RequireAuth verifies the session cookie and stores the (stateless)
// principal in the request context. Sessions carry everything the
// handlers need, so no user lookup happens per request.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			principal, err := tokens.Verify(token)
			if err != nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a route to the given roles. It must be mounted
// after RequireAuth.
func RequireRole(tokens *auth.TokenService, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := tokens.RequireRole(auth.TokenFromRequest(r), allowedRoles...)
			if err != nil {
				if errors.Is(err, auth.ErrForbidden) {
					WriteAPIError(w, http.StatusForbidden, "forbidden", "insufficient role")
					return
				}
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			ctx := context.WithValue(r.Context(), PrincipalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext retrieves the authenticated principal placed by
// RequireAuth; ok is false when the route is unauthenticated.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(auth.Principal)
	return principal, ok
}
