package middleware

import (
	"net/http"
)

// SessionChecker es lo único que el middleware necesita del gate.
type SessionChecker interface {
	Authenticated() bool
}

// RequireSession corta con 401 si no hay sesión.
// Con gate nil deja pasar todo (modo dev).
func RequireSession(gate SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate != nil && !gate.Authenticated() {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
