// Package apicors provides permissive CORS middleware for the plugin's
// JSON API. Authorization is delegated to the surrounding deployment gate,
// so no cookies are involved and any origin may call the endpoints.
package apicors

import (
	"net/http"
)

// Middleware returns CORS middleware for the JSON API routes.
//
// It allows any origin without credentials, permits the methods the API
// actually uses, and answers preflight OPTIONS requests directly.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
