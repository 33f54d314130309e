package middleware

import (
	"context"
	"net/http"
	"strings"

	"medizo/models"
	"medizo/utils"
)

// Key type for context
type contextKey string

const ClaimsContextKey = contextKey("claims")

// ClaimsFromContext returns the verified token claims attached by the auth
// middleware, or nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *utils.Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*utils.Claims)
	return claims
}

// RequireUser verifies a bearer token with the user role and attaches its
// claims to the request context.
func RequireUser(next http.Handler) http.Handler {
	return requireRole(models.RoleUser, next)
}

// RequireAdmin verifies a bearer token with the admin role and attaches its
// claims to the request context.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(models.RoleAdmin, next)
}

func requireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if claims.Role != role {
			utils.WriteError(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
