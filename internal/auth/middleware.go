package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type identityKey struct{}

// RequireAuth returns a middleware that rejects requests lacking a valid
// "Bearer <token>" authorization header. On success the verified claims are
// stored in the request context for downstream handlers; nothing is shared
// across requests.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if header == "" || !strings.HasPrefix(header, prefix) {
				unauthorized(w, "Authorization token required")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, prefix))
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the claims attached by RequireAuth, or false
// when the request did not pass through the middleware.
func IdentityFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(identityKey{}).(*Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
