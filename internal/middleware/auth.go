package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth handles Bearer token authentication for admin endpoints.
// An empty configured token disables the admin surface entirely rather
// than leaving it open.
type AdminAuth struct {
	token string
}

// NewAdminAuth creates a new AdminAuth with the configured token.
func NewAdminAuth(token string) *AdminAuth {
	return &AdminAuth{token: token}
}

// Enabled reports whether an admin token is configured.
func (m *AdminAuth) Enabled() bool {
	return m.token != ""
}

// Require validates the Bearer token before calling the next handler.
func (m *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			http.Error(w, "admin endpoints disabled", http.StatusUnauthorized)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
