package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/config"
	"finitefield.org/marketing-web/internal/contact"
	"finitefield.org/marketing-web/templates"
)

type recordingSubmitter struct {
	mu   sync.Mutex
	subs []contact.Submission
}

func (s *recordingSubmitter) Submit(_ context.Context, sub contact.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
	return nil
}

func (s *recordingSubmitter) last() (contact.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subs) == 0 {
		return contact.Submission{}, false
	}
	return s.subs[len(s.subs)-1], true
}

// newTestRouter builds the app with templates reparsed from disk, the given
// environment overrides and a recording submitter.
func newTestRouter(t *testing.T, env map[string]string) (http.Handler, *recordingSubmitter) {
	t.Helper()
	values := map[string]string{
		"SITE_ENV":     "test",
		"SITE_APP_URL": "https://example.com",
	}
	for k, v := range env {
		values[k] = v
	}
	cfg, err := config.Load(config.WithEnvMap(values), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)

	sub := &recordingSubmitter{}
	app, err := newApp(cfg, zap.NewNop(), appOptions{
		Dev:          true,
		TemplatesDir: "../../templates",
		Submitter:    sub,
		Now:          func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return app.Router(), sub
}

// client keeps cookies between requests so session and CSRF state survive.
type client struct {
	t   *testing.T
	h   http.Handler
	jar map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, jar: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.jar {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.jar[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// csrf loads path and returns the token rendered into the page head.
func (c *client) csrf(path string) string {
	c.t.Helper()
	rec := c.get(path)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	token, ok := parse(c.t, rec).Find(`meta[name="csrf-token"]`).Attr("content")
	require.True(c.t, ok)
	require.NotEmpty(c.t, token)
	return token
}

func (c *client) postForm(path, token string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", token)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func (c *client) postJSON(path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	return c.do(req)
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func validContact() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"subject": {"New marketing site"},
		"message": {"We would like a bilingual landing page."},
	}
}

func TestEmbeddedTemplatesParse(t *testing.T) {
	sets, err := parseTemplates(templates.FS)
	require.NoError(t, err)
	for _, page := range []string{"home", "about", "services", "pricing", "contact", "quote", "legal", "notfound", "error"} {
		assert.Contains(t, sets, page)
	}
}

func TestNewAppRejectsInvalidContent(t *testing.T) {
	orig := validateContent
	validateContent = func() error { return errors.New("hero: headline required") }
	t.Cleanup(func() { validateContent = orig })

	cfg, err := config.Load(config.WithEnvMap(map[string]string{"SITE_ENV": "test", "SITE_APP_URL": "https://example.com"}), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)
	_, err = newApp(cfg, zap.NewNop(), appOptions{Dev: true, TemplatesDir: "../../templates"})
	require.ErrorContains(t, err, "headline required")
}

func TestHealthzOK(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestRootRedirectsToPreferredLocale(t *testing.T) {
	srv, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ar-EG,ar;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ar", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/about?hl=ar&utm=x", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ar/about?utm=x", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Header.Set("Accept-Language", "de")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "/en/pricing", rec.Header().Get("Location"))
}

func TestHomeRendersEnglish(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	rec := newClient(t, srv).get("/en")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))

	doc := parse(t, rec)
	html := doc.Find("html")
	assert.Equal(t, "en", html.AttrOr("lang", ""))
	assert.Equal(t, "ltr", html.AttrOr("dir", ""))
	assert.Equal(t, "https://example.com/en", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	assert.Equal(t, "https://example.com/ar", doc.Find(`link[rel="alternate"][hreflang="ar"]`).AttrOr("href", ""))
	assert.Equal(t, "https://example.com/en", doc.Find(`link[rel="alternate"][hreflang="x-default"]`).AttrOr("href", ""))
	assert.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())
	assert.Equal(t, "Build a website your customers remember", strings.TrimSpace(doc.Find("h1.hero__headline").Text()))
	assert.Equal(t, 6, doc.Find(".features__grid .feature").Length())
	assert.Equal(t, "About", strings.TrimSpace(doc.Find(".header__links a").First().Text()))
	assert.Equal(t, 0, doc.Find(".breadcrumbs").Length())
	// quote link and newsletter are opt-in
	assert.Equal(t, 0, doc.Find(`.header__nav a[href="/en/quote"]`).Length())
	assert.Equal(t, 0, doc.Find("#newsletter").Length())
	assert.Equal(t, 0, doc.Find(".animate").Length())
}

func TestHomeRendersArabicRTL(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	rec := newClient(t, srv).get("/ar")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc := parse(t, rec)
	html := doc.Find("html")
	assert.Equal(t, "ar", html.AttrOr("lang", ""))
	assert.Equal(t, "rtl", html.AttrOr("dir", ""))
	assert.Equal(t, "ar_AR", doc.Find(`meta[property="og:locale"]`).AttrOr("content", ""))
	en := doc.Find(`.lang-switch a[hreflang="en"]`)
	assert.Equal(t, "/en", en.AttrOr("href", ""))
	assert.Equal(t, "ltr", en.AttrOr("dir", ""))
	assert.Equal(t, "true", doc.Find(`.lang-switch a[hreflang="ar"]`).AttrOr("aria-current", ""))
	assert.Equal(t, "/ar/about", doc.Find(".header__links a").First().AttrOr("href", ""))
}

func TestUnknownLocaleAndPageRender404(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	c := newClient(t, srv)

	for _, path := range []string{"/fr", "/fr/about", "/en/nope", "/ar/about/team"} {
		rec := c.get(path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		doc := parse(t, rec)
		assert.Equal(t, "noindex, nofollow", doc.Find(`meta[name="robots"]`).AttrOr("content", ""), path)
		assert.Equal(t, 0, doc.Find(`script[type="application/ld+json"]`).Length(), path)
	}

	rec := c.get("/ar/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, "ar", doc.Find("html").AttrOr("lang", ""))

	rec = c.get("/fr")
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestMarketingPagesRender(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{"SITE_ENABLE_ANIMATIONS": "true", "SITE_ANIMATION_PRESET": "full"})
	c := newClient(t, srv)

	cases := []struct {
		path     string
		heading  string
		jsonLD   int
		selector string
	}{
		{path: "/en/about", heading: "A small team with a big craft", jsonLD: 1, selector: ".stats .stat"},
		{path: "/en/services", heading: "Services built around outcomes", jsonLD: 1, selector: `img[src="/assets/img/services.svg"]`},
		{path: "/en/pricing", heading: "Simple, transparent pricing", jsonLD: 2, selector: ".tier--highlighted"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := c.get(tc.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			doc := parse(t, rec)
			assert.Equal(t, tc.heading, strings.TrimSpace(doc.Find("h1").First().Text()))
			assert.Equal(t, tc.jsonLD, doc.Find(`script[type="application/ld+json"]`).Length())
			assert.Positive(t, doc.Find(tc.selector).Length())
			assert.Equal(t, 2, doc.Find(".breadcrumbs li").Length())
			assert.Positive(t, doc.Find(".animate-fade-up.animate--full").Length())
		})
	}

	rec := c.get("/en/pricing")
	body := rec.Body.String()
	assert.Contains(t, body, `"@type":"FAQPage"`)
	assert.Contains(t, body, `"@type":"BreadcrumbList"`)
	assert.Contains(t, body, "animation-delay: 150ms")
}

func TestContactPageWithoutFormFeature(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	c := newClient(t, srv)

	rec := c.get("/en/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, 0, doc.Find("#contact-form").Length())
	assert.Contains(t, rec.Body.String(), `"@type":"LocalBusiness"`)

	assert.Equal(t, http.StatusNotFound, c.get("/en/quote").Code)

	token := c.csrf("/en")
	assert.Equal(t, http.StatusNotFound, c.postForm("/en/contact", token, validContact(), true).Code)
	assert.Equal(t, http.StatusNotFound, c.postForm("/en/newsletter", token, url.Values{"email": {"a@b.co"}}, true).Code)
}

func TestContactFormHTMXValidationAndSuccess(t *testing.T) {
	srv, sub := newTestRouter(t, map[string]string{"SITE_ENABLE_CONTACT_FORM": "true"})
	c := newClient(t, srv)
	token := c.csrf("/en/contact")

	rec := c.postForm("/en/contact", token, url.Values{
		"name":    {"A"},
		"email":   {"not-an-email"},
		"subject": {"Hello there"},
		"message": {"short"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parse(t, rec)
	assert.Equal(t, 0, doc.Find("html head title").Length(), "htmx responses are fragments")
	assert.Equal(t, 1, doc.Find("#contact-form").Length())
	assert.Contains(t, doc.Find("#contact-name-error").Text(), "Name must be at least 2 characters.")
	assert.Contains(t, doc.Find("#contact-email-error").Text(), "Please enter a valid email address.")
	assert.Contains(t, doc.Find("#contact-message-error").Text(), "Message must be at least 10 characters.")
	assert.Equal(t, "Hello there", doc.Find(`input[name="subject"]`).AttrOr("value", ""))
	_, delivered := sub.last()
	assert.False(t, delivered)

	rec = c.postForm("/en/contact", token, validContact(), true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc = parse(t, rec)
	assert.Contains(t, doc.Find(".form__success h2").Text(), "Message sent")
	assert.Equal(t, 0, doc.Find("form").Length())

	got, ok := sub.last()
	require.True(t, ok)
	assert.Equal(t, contact.KindContact, got.Kind)
	assert.Equal(t, "en", got.Locale)
	assert.Equal(t, "ada@example.com", got.Message.Email)
	assert.Len(t, got.ID, 26)
}

func TestContactFormPlainPostRendersPage(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{"SITE_ENABLE_CONTACT_FORM": "true"})
	c := newClient(t, srv)
	token := c.csrf("/ar/contact")

	form := validContact()
	form.Set("email", "bad")
	rec := c.postForm("/ar/contact", token, form, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, "rtl", doc.Find("html").AttrOr("dir", ""))
	assert.Equal(t, "/ar/contact", doc.Find("#contact-form form").AttrOr("action", ""))
	assert.NotEmpty(t, strings.TrimSpace(doc.Find("#contact-email-error").Text()))
	assert.Equal(t, "Ada Lovelace", doc.Find(`input[name="name"]`).AttrOr("value", ""))
}

func TestQuoteFormSubmitsDetails(t *testing.T) {
	srv, sub := newTestRouter(t, map[string]string{"SITE_ENABLE_CONTACT_FORM": "true"})
	c := newClient(t, srv)

	rec := c.get("/en/quote")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, 6, doc.Find(`select[name="budget"] option`).Length())
	assert.Equal(t, 4, doc.Find(`input[name="services"]`).Length())
	assert.Equal(t, 1, doc.Find(`.header__nav a[href="/en/quote"]`).Length())
	token, _ := doc.Find(`meta[name="csrf-token"]`).Attr("content")

	form := validContact()
	form.Set("budget", "huge")
	rec = c.postForm("/en/quote", token, form, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please choose one of the listed budgets.")

	form.Set("budget", "10k-25k")
	form.Set("timeline", "1-month")
	form["services"] = []string{"design", "engineering"}
	rec = c.postForm("/en/quote", token, form, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message sent")

	got, ok := sub.last()
	require.True(t, ok)
	assert.Equal(t, contact.KindQuote, got.Kind)
	require.NotNil(t, got.Quote)
	assert.Equal(t, "10k-25k", got.Quote.Budget)
	assert.Equal(t, []string{"design", "engineering"}, got.Quote.Services)
}

func TestPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{"SITE_ENABLE_CONTACT_FORM": "true"})
	c := newClient(t, srv)
	c.csrf("/en/contact")

	rec := c.postForm("/en/contact", "", validContact(), false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = c.postForm("/en/contact", "forged", validContact(), false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOversizedFormBodyIsRejected(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{"SITE_ENABLE_CONTACT_FORM": "true"})
	c := newClient(t, srv)
	token := c.csrf("/en/contact")

	form := validContact()
	form.Set("message", strings.Repeat("m", 70<<10))

	// token in the body: the CSRF check parses the form and hits the cap
	form.Set("csrf_token", token)
	rec := c.postForm("/en/contact", "", form, false)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// token in the header: the handler's own parse hits the cap
	form.Del("csrf_token")
	rec = c.postForm("/en/contact", token, form, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsletterSignup(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{"SITE_ENABLE_NEWSLETTER": "true"})
	c := newClient(t, srv)
	token := c.csrf("/en")

	rec := c.postForm("/en/newsletter", token, url.Values{"email": {"nope"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Contains(t, doc.Find("#newsletter-error").Text(), "Please enter a valid email address.")
	assert.Equal(t, "nope", doc.Find(`input[name="email"]`).AttrOr("value", ""))

	rec = c.postForm("/en/newsletter", token, url.Values{"email": {"reader@example.com"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks! Please check your inbox to confirm.")

	rec = c.postForm("/en/newsletter", token, url.Values{"email": {"reader@example.com"}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.Equal(t, "/en?newsletter=success#newsletter", loc)

	rec = c.get("/en?newsletter=success")
	assert.Contains(t, parse(t, rec).Find("#newsletter .form__success").Text(), "Thanks!")
}

func TestLegalPageCachingAndTOC(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	c := newClient(t, srv)

	rec := c.get("/en/privacy")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "private, max-age=600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "Thu, 15 Jan 2026 00:00:00 GMT", rec.Header().Get("Last-Modified"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	doc := parse(t, rec)
	assert.Equal(t, "Privacy Policy", strings.TrimSpace(doc.Find("article.prose h1").Text()))
	assert.Equal(t, 1, doc.Find(`nav[aria-label="On this page"]`).Length())
	assert.Positive(t, doc.Find(".legal__toc li").Length())
	assert.Equal(t, "2026-01-15", doc.Find(".legal__updated time").AttrOr("datetime", ""))
	assert.Contains(t, doc.Find(".legal__updated").Text(), "January 15, 2026")
	firstAnchor := doc.Find(".legal__toc a").First().AttrOr("href", "")
	require.True(t, strings.HasPrefix(firstAnchor, "#"))
	assert.Equal(t, 1, doc.Find(".legal__body [id='"+strings.TrimPrefix(firstAnchor, "#")+"']").Length())

	req := httptest.NewRequest(http.MethodGet, "/en/privacy", nil)
	req.Header.Set("If-None-Match", etag)
	rec2 := c.do(req)
	assert.Equal(t, http.StatusNotModified, rec2.Code)
	assert.Empty(t, rec2.Body.String())
}

func TestLegalPageArabic(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	rec := newClient(t, srv).get("/ar/terms")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parse(t, rec)
	article := doc.Find("article.prose")
	assert.Equal(t, "ar", article.AttrOr("lang", ""))
	assert.Equal(t, "rtl", article.AttrOr("dir", ""))
	assert.Contains(t, doc.Find(".legal__updated").Text(), "15 يناير 2026")
}

func TestRobotsAndSitemap(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	c := newClient(t, srv)

	rec := c.get("/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "User-agent: *")
	assert.Contains(t, body, "Disallow: /api/")
	assert.Contains(t, body, "Sitemap: https://example.com/sitemap.xml")

	rec = c.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	body = rec.Body.String()
	assert.Contains(t, body, "<loc>https://example.com/ar/privacy</loc>")
	assert.Contains(t, body, `hreflang="en"`)

	rec = c.get("/logo.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestEventsEndpoint(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{"SITE_ENABLE_ANALYTICS": "true"})
	c := newClient(t, srv)
	token := c.csrf("/en")

	rec := c.postJSON("/api/events", token, `{"name":"cta_click","params":{"name":"hero_primary"}}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.postJSON("/api/events", token, `{"name":"1-bad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.postJSON("/api/events", token, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.postJSON("/api/events", "", `{"name":"cta_click"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestConsentHidesPromptAndGatesAnalytics(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{
		"SITE_ENABLE_COOKIE_CONSENT": "true",
		"SITE_COOKIE_CONSENT_MODE":   "modal",
		"SITE_ENABLE_ANALYTICS":      "true",
		"SITE_GA_ID":                 "G-TEST123",
	})
	c := newClient(t, srv)

	rec := c.get("/en")
	doc := parse(t, rec)
	assert.Equal(t, 1, doc.Find("[data-cookie-consent].cookie--modal").Length())
	assert.Contains(t, rec.Body.String(), "googletagmanager.com/gtag/js?id=G-TEST123")
	token, _ := doc.Find(`meta[name="csrf-token"]`).Attr("content")

	rec = c.postJSON("/api/consent", token, `{"consent":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.postJSON("/api/consent", token, `{"consent":"declined"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.get("/en")
	doc = parse(t, rec)
	assert.Equal(t, 0, doc.Find("[data-cookie-consent]").Length())
	assert.NotContains(t, rec.Body.String(), "googletagmanager.com")
}

func TestChatWidgetSnippet(t *testing.T) {
	srv, _ := newTestRouter(t, map[string]string{
		"SITE_ENABLE_CHAT_WIDGET": "true",
		"SITE_CHAT_PROVIDER":      "crisp",
		"SITE_CHAT_PROPERTY_ID":   "abc-123",
	})
	body := newClient(t, srv).get("/en").Body.String()
	assert.Contains(t, body, "client.crisp.chat/l.js")
	assert.Contains(t, body, `window.CRISP_WEBSITE_ID = "abc-123"`)
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	c := newClient(t, srv)

	rec := c.get("/assets/css/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, c.do(req).Code)

	assert.Equal(t, http.StatusOK, c.get("/assets/js/site.js").Code)
}

func TestSiteScriptForwardsEventsToClientTags(t *testing.T) {
	srv, _ := newTestRouter(t, nil)
	rec := newClient(t, srv).get("/assets/js/site.js")
	require.Equal(t, http.StatusOK, rec.Code)
	js := rec.Body.String()
	assert.Contains(t, js, `window.gtag("event", name, params)`)
	assert.Contains(t, js, `window.fbq("trackCustom", name, params)`)
	assert.Contains(t, js, `post("/api/events"`)
}
