package middleware

import "net/http"

// HTMX flags requests that expect a fragment swap. Boosted navigation wants a
// full page and is not flagged. Responses vary on HX-Request either way.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fragment := r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), fragment)))
	})
}
