package middleware

import (
	"context"
	"net/http"
	"strings"

	"peopledesk/internal/domain/auth"
)

const ctxKeyUser ctxKey = "user"

// Auth parses a bearer token when one is present and attaches the claims to
// the request context. Requests without a valid token pass through
// unauthenticated; handlers that need an identity check for it themselves.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyUser).(*auth.Claims)
	return claims, ok
}
