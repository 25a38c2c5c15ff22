package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"finitefield.org/marketing-web/internal/i18n"
	"finitefield.org/marketing-web/internal/nav"
)

const localeCookieName = "hl"

// PreferredLocale picks the locale for an unprefixed request:
// query `hl` > cookie `hl` > session > Accept-Language > fallback.
func PreferredLocale(r *http.Request, bundle *i18n.Bundle) string {
	if q := strings.ToLower(r.URL.Query().Get("hl")); bundle.IsSupported(q) {
		return q
	}
	if c, err := r.Cookie(localeCookieName); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
		return strings.ToLower(c.Value)
	}
	if s := GetSession(r); bundle.IsSupported(s.Locale) {
		return s.Locale
	}
	return bundle.Resolve(r.Header.Get("Accept-Language"))
}

// RedirectToLocale redirects unprefixed page paths to their locale-prefixed form.
func RedirectToLocale(bundle *i18n.Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := PreferredLocale(r, bundle)
		target := nav.LocalizedPath(lang, r.URL.Path)
		q := r.URL.Query()
		q.Del("hl")
		if len(q) > 0 {
			target += "?" + q.Encode()
		}
		w.Header().Add("Vary", "Accept-Language, Cookie")
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// LocalePrefix validates the `{locale}` route parameter. Supported locales are
// stored in context, session and the `hl` cookie; anything else is passed to
// notFound with the fallback locale in context. Localized responses carry
// Content-Language and vary on Accept-Language.
func LocalePrefix(bundle *i18n.Bundle, secure bool, notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := chi.URLParam(r, "locale")
			_, rest, ok := nav.SplitLocale(r.URL.Path, bundle.Supported())
			if lang == "" || !ok || !bundle.IsSupported(lang) {
				ctx := WithLocale(r.Context(), bundle.Fallback(), r.URL.Path)
				notFound.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			s := GetSession(r)
			if s.Locale != lang {
				s.Locale = lang
				s.MarkDirty()
			}
			if c, err := r.Cookie(localeCookieName); err != nil || c.Value != lang {
				http.SetCookie(w, &http.Cookie{
					Name:     localeCookieName,
					Value:    lang,
					Path:     "/",
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set("Content-Language", lang)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang, rest)))
		})
	}
}

// Lang returns the locale stored by LocalePrefix, else the session locale, else fallback.
func Lang(r *http.Request, fallback string) string {
	if l := LocaleFromContext(r.Context()); l != "" {
		return l
	}
	if s := GetSession(r); s.Locale != "" {
		return s.Locale
	}
	return fallback
}

// SameOrigin reports whether ref is a relative URL safe to redirect to.
func SameOrigin(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(ref, "//")
}
