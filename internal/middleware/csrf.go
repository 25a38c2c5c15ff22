package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
)

const (
	csrfCookieName = "csrf_token"
	// CSRFHeader carries the token on htmx and fetch requests.
	CSRFHeader = "X-CSRF-Token"
	// CSRFField carries the token on plain form posts.
	CSRFField = "csrf_token"
)

// CSRF implements the double-submit pattern. The token lives in the session
// and is mirrored into a script-readable cookie; state-changing requests must
// present it in CSRFHeader or CSRFField and carry the matching cookie.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			if s.CSRFToken == "" {
				s.CSRFToken = newCSRFToken()
				s.MarkDirty()
			}
			token := s.CSRFToken

			cookie, _ := r.Cookie(csrfCookieName)
			if cookie == nil || cookie.Value != token {
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if mutates(r.Method) {
				sent, err := submittedToken(r)
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				if !sameToken(sent, token) || cookie == nil || !sameToken(cookie.Value, token) {
					writeError(w, r, http.StatusForbidden, "invalid CSRF token")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CSRFToken returns the session's token for templates.
func CSRFToken(r *http.Request) string {
	return GetSession(r).CSRFToken
}

// submittedToken reads the header, then the form field. Parse errors surface so
// an oversized body is not reported as a token mismatch.
func submittedToken(r *http.Request) (string, error) {
	if v := r.Header.Get(CSRFHeader); v != "" {
		return v, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get(CSRFField), nil
}

func sameToken(a, b string) bool {
	return a != "" && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// mutates reports whether method can change server state.
func mutates(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}
