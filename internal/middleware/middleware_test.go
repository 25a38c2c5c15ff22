package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/marketing-web/internal/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load(fstest.MapFS{
		"en.yaml": {Data: []byte("nav:\n  home: Home\n")},
		"ar.yaml": {Data: []byte("nav:\n  home: الرئيسية\n")},
	}, "en", []string{"en", "ar"})
	require.NoError(t, err)
	return b
}

func cookieValue(res *http.Response, name string) string {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestSessionRoundTripAndTamper(t *testing.T) {
	sessions := NewSessions(SessionOptions{SigningKey: "k"})
	var seen string
	h := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r).ID
		_, _ = io.WriteString(w, "ok")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	raw := cookieValue(rec.Result(), defaultSessionCookie)
	require.NotEmpty(t, raw)
	first := seen

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: defaultSessionCookie, Value: raw})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, first, seen)
	assert.Empty(t, cookieValue(rec.Result(), defaultSessionCookie), "clean session should not be rewritten")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: defaultSessionCookie, Value: "x" + raw})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, first, seen)

	other := NewSessions(SessionOptions{SigningKey: "other"})
	_, ok := other.read(req)
	assert.False(t, ok)
}

func csrfStack() http.Handler {
	sessions := NewSessions(SessionOptions{SigningKey: "k"})
	return sessions.Middleware(HTMX(CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok:"+CSRFToken(r))
	}))))
}

func TestCSRF(t *testing.T) {
	h := csrfStack()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	res := rec.Result()
	token := cookieValue(res, csrfCookieName)
	session := cookieValue(res, defaultSessionCookie)
	require.NotEmpty(t, token)
	assert.Equal(t, "ok:"+token, rec.Body.String())

	post := func(form url.Values, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if header != "" {
			req.Header.Set(CSRFHeader, header)
		}
		req.AddCookie(&http.Cookie{Name: defaultSessionCookie, Value: session})
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusForbidden, post(url.Values{}, "").Code)
	assert.Equal(t, http.StatusForbidden, post(url.Values{}, "wrong").Code)
	assert.Equal(t, http.StatusOK, post(url.Values{}, token).Code)
	assert.Equal(t, http.StatusOK, post(url.Values{CSRFField: {token}}, "").Code)
}

func TestCSRFRejectsHTMXWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	csrfStack().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"invalid CSRF token"}`, rec.Body.String())
}

func localeRouter(t *testing.T) http.Handler {
	bundle := testBundle(t)
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "404:"+LocaleFromContext(r.Context()))
	})
	sessions := NewSessions(SessionOptions{SigningKey: "k"})
	r := chi.NewRouter()
	r.Use(sessions.Middleware)
	r.NotFound(notFound)
	r.Get("/", RedirectToLocale(bundle))
	r.Get("/about", RedirectToLocale(bundle))
	r.Route("/{locale}", func(r chi.Router) {
		r.Use(LocalePrefix(bundle, false, notFound))
		page := func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, LocaleFromContext(r.Context())+" "+PathFromContext(r.Context()))
		}
		r.Get("/", page)
		r.Get("/about", page)
	})
	return r
}

func TestLocalePrefix(t *testing.T) {
	h := localeRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ar/about", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ar /about", rec.Body.String())
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
	assert.Equal(t, "ar", cookieValue(rec.Result(), localeCookieName))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en", nil))
	assert.Equal(t, "en /", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fr/about", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404:en", rec.Body.String())
}

func TestRedirectToLocalePrecedence(t *testing.T) {
	h := localeRouter(t)
	cases := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{"accept language", "/about", "", "ar-EG,ar;q=0.9", "/ar/about"},
		{"cookie beats header", "/about", "en", "ar", "/en/about"},
		{"query beats cookie", "/?hl=ar&ref=x", "en", "", "/ar?ref=x"},
		{"default", "/", "", "", "/en"},
		{"unsupported cookie ignored", "/", "fr", "ar", "/ar"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: localeCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tc.want, rec.Header().Get("Location"))
		})
	}
}

func TestAssetsWithCache(t *testing.T) {
	fsys := fstest.MapFS{"css/site.css": {Data: []byte("body{}")}}
	h := http.StripPrefix("/assets", AssetsWithCache(fsys))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.True(t, strings.HasPrefix(etag, `W/"`))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	for _, p := range []string{"/assets/css/", "/assets/css", "/assets/missing.js"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
	}
}

func TestNotModifiedMatchesList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, NotModified(req, `W/"abc"`))

	req.Header.Set("If-None-Match", `"zzz", "abc"`)
	assert.True(t, NotModified(req, `W/"abc"`))

	req.Header.Set("If-None-Match", `W/"zzz"`)
	assert.False(t, NotModified(req, `W/"abc"`))

	req.Header.Set("If-None-Match", "*")
	assert.True(t, NotModified(req, `"anything"`))
}

func TestRequestLoggerAndRecoverer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), completed[0].ContextMap()["status"])
	assert.Equal(t, "/explode", completed[0].ContextMap()["path"])
}

func TestRequestLoggerReportsInnerLocale(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = WithLocale(r.Context(), "ar", "/about")
		w.WriteHeader(http.StatusNoContent)
	})))
	req := httptest.NewRequest(http.MethodGet, "/ar/about", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	fields := completed[0].ContextMap()
	assert.Equal(t, "ar", fields["locale"])
	assert.Equal(t, true, fields["htmx"])
}

func TestSameOrigin(t *testing.T) {
	assert.True(t, SameOrigin("/en/contact"))
	assert.False(t, SameOrigin("//evil.example"))
	assert.False(t, SameOrigin("https://evil.example/"))
	assert.False(t, SameOrigin("relative"))
}

func TestHTMXIgnoresBoostedNavigation(t *testing.T) {
	var fragment bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fragment = IsHTMX(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/en", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, fragment)
	assert.Equal(t, "HX-Request", rec.Header().Get("Vary"))

	req.Header.Set("HX-Boosted", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, fragment)
}

func TestCSRFRejectsFetchWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	csrfStack().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"invalid CSRF token"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/contact", nil)
	rec = httptest.NewRecorder()
	csrfStack().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestLocalePrefixVariesOnAcceptLanguage(t *testing.T) {
	rec := httptest.NewRecorder()
	localeRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en/about", nil))
	assert.Contains(t, rec.Header().Values("Vary"), "Accept-Language")
}
