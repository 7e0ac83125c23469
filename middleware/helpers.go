package middleware

import (
	"net/http"

	"github.com/obraseguro/backend/models"
)

// GetClaims returns the JWT claims stashed by JWTMiddleware, or nil.
func GetClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(userClaimsKey).(*Claims)
	return claims
}

// GetUser returns the authenticated user stashed by JWTMiddleware, or nil.
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// RequireGestor gates a subtree to gestor principals.
func RequireGestor(next http.Handler) http.Handler {
	return requireRole(models.RoleGestor, next)
}

// RequireEngenheiro gates a subtree to engineer principals.
func RequireEngenheiro(next http.Handler) http.Handler {
	return requireRole(models.RoleEngenheiro, next)
}

func requireRole(role models.UserRole, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		if user.Role != role {
			http.Error(w, "not enough permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
