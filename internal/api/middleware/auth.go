package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vikramraju/customer-feedback/backend/internal/auth"
)

type contextKey string

const claimsContextKey contextKey = "session-claims"

// AuthMiddleware validates bearer session tokens. Requests without a valid
// token get 401; requests whose token carries none of the allowed roles get
// 403. Claims are stored on the request context for handlers.
func AuthMiddleware(jwtSecret string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				respondError(w, http.StatusForbidden, "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the session claims set by AuthMiddleware, or nil
// when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
