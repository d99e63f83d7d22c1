// File: internal/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS allows the listed origins to call the API with credentials.
// A single "*" entry allows any origin.
//
// It must wrap the whole router: mux only runs Use middleware on matched
// routes, and preflight OPTIONS requests match none.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
		handlers.MaxAge(600),
	)
}
