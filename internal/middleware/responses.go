package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// writeError answers htmx swaps and fetch beacons with JSON, everything else
// with plain text.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if !wantsJSON(r) {
		http.Error(w, msg, code)
		return
	}
	id, _ := RequestID(r.Context())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, RequestID: id})
}

func wantsJSON(r *http.Request) bool {
	if IsHTMX(r.Context()) {
		return true
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
