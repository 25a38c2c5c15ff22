package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultSessionCookie = "SITE_SESSION"
	sessionMaxAge        = 30 * 24 * time.Hour
)

var errBadSession = errors.New("session: invalid cookie")

// SessionData is the visitor state kept in the signed cookie.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	Consent   string    `json:"consent,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	dirty bool
}

// MarkDirty schedules the cookie to be rewritten on this response.
func (sd *SessionData) MarkDirty() {
	sd.dirty = true
	sd.UpdatedAt = time.Now().UTC()
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	// SigningKey signs the cookie. Empty generates a process-ephemeral key.
	SigningKey string
	Secure     bool
	CookieName string
	Logger     *zap.Logger
}

// Sessions reads and writes HMAC-signed session cookies.
type Sessions struct {
	key    []byte
	secure bool
	name   string
}

// NewSessions builds the session manager.
func NewSessions(opts SessionOptions) *Sessions {
	s := &Sessions{key: []byte(opts.SigningKey), secure: opts.Secure, name: opts.CookieName}
	if s.name == "" {
		s.name = defaultSessionCookie
	}
	if len(s.key) == 0 {
		s.key = make([]byte, 32)
		_, _ = rand.Read(s.key)
		if opts.Logger != nil {
			opts.Logger.Warn("session signing key not set; sessions will not survive a restart",
				zap.String("env", "SITE_SESSION_SIGNING_KEY"))
		}
	}
	return s
}

// Secure reports whether cookies carry the Secure attribute.
func (s *Sessions) Secure() bool { return s.secure }

// Middleware attaches the visitor session to the request context, starting a
// new one when the cookie is missing or fails verification.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, ok := s.read(r)
		if !ok {
			now := time.Now().UTC()
			sd = &SessionData{
				ID:        ulid.Make().String(),
				CSRFToken: newCSRFToken(),
				CreatedAt: now,
				UpdatedAt: now,
				dirty:     true,
			}
		}
		flush := func(w http.ResponseWriter) {
			if sd.dirty {
				s.write(w, sd)
				sd.dirty = false
			}
		}
		rw := NewResponseRecorder(w)
		rw.SetBeforeWrite(flush)
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sd)))
		if !rw.Written() {
			flush(w)
		}
	})
}

// GetSession returns the request's session, or an empty one outside Middleware.
func GetSession(r *http.Request) *SessionData {
	if sd, ok := r.Context().Value(sessionKey{}).(*SessionData); ok {
		return sd
	}
	return &SessionData{}
}

func (s *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(s.name)
	if err != nil {
		return nil, false
	}
	sd, err := s.decode(c.Value)
	if err != nil {
		return nil, false
	}
	return sd, true
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    s.encode(sd),
		Path:     "/",
		MaxAge:   int(sessionMaxAge / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// encode renders the cookie value as base64(json) "." base64(hmac).
func (s *Sessions) encode(sd *SessionData) string {
	payload, _ := json.Marshal(sd)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(payload) + "." + enc.EncodeToString(s.mac(payload))
}

func (s *Sessions) decode(value string) (*SessionData, error) {
	dot := strings.LastIndexByte(value, '.')
	if dot < 0 {
		return nil, errBadSession
	}
	enc := base64.RawURLEncoding
	payload, err := enc.DecodeString(value[:dot])
	if err != nil {
		return nil, errBadSession
	}
	sig, err := enc.DecodeString(value[dot+1:])
	if err != nil || !hmac.Equal(sig, s.mac(payload)) {
		return nil, errBadSession
	}
	var sd SessionData
	if err := json.Unmarshal(payload, &sd); err != nil || sd.ID == "" {
		return nil, errBadSession
	}
	return &sd, nil
}

func (s *Sessions) mac(payload []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write(payload)
	return h.Sum(nil)
}
