package middleware

import (
	"net/http"
	"strings"
)

// CORS returns a middleware that answers preflight requests and reflects the
// Origin header back when it is on the allow list. An entry of "*" allows any
// origin. Requests from origins not on the list pass through without CORS
// headers, so the browser rejects the response. When allowedOrigins is empty
// the middleware is a no-op.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowAll := false
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
			continue
		}
		if o != "" {
			originsSet[o] = true
		}
	}
	enabled := allowAll || len(originsSet) > 0

	const methods = "GET, POST, PUT, DELETE, OPTIONS"
	const headers = "Authorization, Content-Type"
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Responses vary by Origin even when no headers are added, or a
			// shared cache could serve an allowed response to a blocked origin.
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" || !(allowAll || originsSet[origin]) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			w.Header().Set("Access-Control-Max-Age", "86400")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
