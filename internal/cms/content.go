package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"finitefield.org/marketing-web/internal/observability"
)

// ErrNotFound is returned when a document cannot be located in any language.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultLang     = "en"
	defaultCacheTTL = 5 * time.Minute
)

// Page is a localized markdown document rendered for display.
type Page struct {
	Kind        string
	Slug        string
	Lang        string
	Title       string
	Description string
	Body        string
	HTML        template.HTML
	TOC         []Heading
	UpdatedAt   time.Time
	// Fallback reports that Lang differs from the requested language.
	Fallback bool
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Updated     string `yaml:"updated"`
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Client resolves documents from an optional remote CMS and the embedded content tree.
type Client struct {
	baseURL  string
	http     *http.Client
	fsys     fs.FS
	fallback string
	langs    []string
	ttl      time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL enables the remote CMS. Empty values keep the client local.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithHTTPClient overrides the client used for remote fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLanguages sets the default language and the remaining languages tried
// when neither the requested nor the default language has a document.
func WithLanguages(fallback string, langs ...string) Option {
	return func(c *Client) {
		if fallback = strings.TrimSpace(fallback); fallback != "" {
			c.fallback = fallback
		}
		c.langs = append([]string(nil), langs...)
	}
}

// WithCacheTTL overrides how long rendered pages stay cached.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient constructs a Client reading markdown from fsys laid out as
// {kind}/{lang}/{slug}.md.
func NewClient(fsys fs.FS, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 5 * time.Second},
		fsys:     fsys,
		fallback: defaultLang,
		ttl:      defaultCacheTTL,
		now:      time.Now,
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPage returns the document for lang, falling back to the default language
// and then to any other configured language.
func (c *Client) GetPage(ctx context.Context, kind, slug, lang string) (Page, error) {
	kind = sanitizeSegment(kind)
	slug = sanitizeSegment(slug)
	if kind == "" || slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = c.fallback
	}

	key := strings.Join([]string{kind, lang, slug}, "|")
	if page, ok := c.cached(key); ok {
		return page, nil
	}

	page, err := c.fetch(ctx, kind, slug, lang)
	if err != nil {
		return Page{}, err
	}
	page.Fallback = page.Lang != lang
	c.store(key, page)
	return clonePage(page), nil
}

func (c *Client) fetch(ctx context.Context, kind, slug, lang string) (Page, error) {
	if c.baseURL != "" {
		page, err := c.fetchRemote(ctx, kind, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			observability.FromContext(ctx).Warn("cms remote fetch failed",
				zap.String("kind", kind),
				zap.String("slug", slug),
				zap.String("lang", lang),
				zap.Error(err),
			)
		}
	}
	for _, candidate := range c.priority(lang) {
		page, err := c.readEmbedded(kind, slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return page, err
	}
	return Page{}, ErrNotFound
}

func (c *Client) priority(lang string) []string {
	order := make([]string, 0, len(c.langs)+2)
	seen := map[string]bool{}
	for _, l := range append([]string{lang, c.fallback}, c.langs...) {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		order = append(order, l)
	}
	return order
}

func (c *Client) fetchRemote(ctx context.Context, kind, slug, lang string) (Page, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", kind, slug)
	if err != nil {
		return Page{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Page{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Page{}, fmt.Errorf("cms: remote status %d", resp.StatusCode)
	}

	var payload struct {
		Lang        string    `json:"lang"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Body        string    `json:"body"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, fmt.Errorf("cms: decode remote page: %w", err)
	}
	if strings.TrimSpace(payload.Body) == "" {
		return Page{}, fmt.Errorf("cms: empty body for %s/%s", kind, slug)
	}
	return buildPage(Page{
		Kind:        kind,
		Slug:        slug,
		Lang:        firstNonEmpty(payload.Lang, lang),
		Title:       payload.Title,
		Description: payload.Description,
		Body:        payload.Body,
		UpdatedAt:   payload.UpdatedAt,
	})
}

func (c *Client) readEmbedded(kind, slug, lang string) (Page, error) {
	if c.fsys == nil {
		return Page{}, ErrNotFound
	}
	file := path.Join(kind, lang, slug+".md")
	data, err := fs.ReadFile(c.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("cms: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	return buildPage(Page{
		Kind:        kind,
		Slug:        slug,
		Lang:        lang,
		Title:       strings.TrimSpace(front.Title),
		Description: strings.TrimSpace(front.Description),
		Body:        body,
		UpdatedAt:   parseDate(front.Updated),
	})
}

func buildPage(page Page) (Page, error) {
	rendered, toc, err := Render(page.Body)
	if err != nil {
		return Page{}, err
	}
	page.HTML = rendered
	page.TOC = toc
	if page.Title == "" {
		page.Title = prettifySlug(page.Slug)
	}
	return page, nil
}

func (c *Client) cached(key string) (Page, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.page), true
}

func (c *Client) store(key string, page Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{page: clonePage(page), expires: c.now().Add(c.ttl)}
}

func clonePage(src Page) Page {
	cp := src
	cp.TOC = append([]Heading(nil), src.TOC...)
	return cp
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSegment(s string) string {
	s = strings.Trim(strings.ToLower(strings.TrimSpace(s)), "/")
	if s == "" || strings.Contains(s, "..") || strings.ContainsAny(s, `/\`) {
		return ""
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
