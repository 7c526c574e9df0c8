package server

import (
	"net/http"

	"github.com/flexos-dev/builder-gateway/internal/auth"
)

// AuthMiddleware rejects requests whose bearer token does not match a
// configured API key digest.
func AuthMiddleware(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, err := auth.ExtractAPIKey(r)
			if err != nil {
				http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
				return
			}
			if err := authenticator.ValidateAPIKey(apiKey); err != nil {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
