// Package seo builds page metadata, structured data, robots.txt and the sitemap
// from the site configuration.
package seo

import (
	"strings"

	"finitefield.org/marketing-web/internal/config"
)

// PageSEO are the per-page inputs to metadata generation.
type PageSEO struct {
	Title       string
	Description string
	Image       string
	NoIndex     bool
	Canonical   string
	Keywords    []string
}

type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

type OpenGraph struct {
	Title            string
	Description      string
	URL              string
	SiteName         string
	Type             string
	Locale           string
	AlternateLocales []string
	Images           []Image
}

type Twitter struct {
	Card        string
	Title       string
	Description string
	Creator     string
	Images      []string
}

type Robots struct {
	Index  bool
	Follow bool
}

// String renders the robots meta directive.
func (r Robots) String() string {
	index, follow := "index", "follow"
	if !r.Index {
		index = "noindex"
	}
	if !r.Follow {
		follow = "nofollow"
	}
	return index + ", " + follow
}

// Alternate is an hreflang link.
type Alternate struct {
	Hreflang string
	Href     string
}

// Meta is the metadata record rendered into the document head.
type Meta struct {
	Base          string
	Title         string
	TitleTemplate string
	Description   string
	Keywords      []string
	Canonical     string
	OpenGraph     OpenGraph
	Twitter       Twitter
	Robots        Robots
	Alternates    []Alternate
}

// KeywordList joins keywords for the keywords meta tag.
func (m Meta) KeywordList() string { return strings.Join(m.Keywords, ", ") }

// Absolute resolves an app-relative path against the site URL.
func Absolute(siteURL, p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	base := strings.TrimRight(siteURL, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// GenerateRootMetadata returns the site-wide defaults every page starts from.
func GenerateRootMetadata(cfg config.Config) Meta {
	s := cfg.SEO
	return Meta{
		Base:          cfg.Site.URL,
		Title:         s.DefaultTitle,
		TitleTemplate: s.TitleTemplate,
		Description:   s.DefaultDescription,
		OpenGraph: OpenGraph{
			Title:       s.DefaultTitle,
			Description: s.DefaultDescription,
			URL:         cfg.Site.URL,
			SiteName:    s.OpenGraph.SiteName,
			Type:        s.OpenGraph.Type,
			Locale:      s.OpenGraph.Locale,
		},
		Twitter: Twitter{
			Card:        s.Twitter.Card,
			Title:       s.DefaultTitle,
			Description: s.DefaultDescription,
			Creator:     s.Twitter.Creator,
		},
		Robots: Robots{Index: s.Robots.Index, Follow: s.Robots.Follow},
	}
}

// GeneratePageMetadata maps page props to a metadata record. The description
// falls back to the site description and images are emitted at 1200x630.
func GeneratePageMetadata(cfg config.Config, p PageSEO) Meta {
	meta := GenerateRootMetadata(cfg)
	description := p.Description
	if description == "" {
		description = cfg.Site.Description
	}
	title := cfg.SEO.Title(p.Title)
	canonical := Absolute(cfg.Site.URL, p.Canonical)

	meta.Title = title
	meta.Description = description
	meta.Keywords = p.Keywords
	meta.Canonical = canonical

	ogTitle := p.Title
	if ogTitle == "" {
		ogTitle = title
	}
	meta.OpenGraph.Title = ogTitle
	meta.OpenGraph.Description = description
	if canonical != "" {
		meta.OpenGraph.URL = canonical
	}
	meta.Twitter.Title = ogTitle
	meta.Twitter.Description = description

	if p.Image != "" {
		img := Absolute(cfg.Site.URL, p.Image)
		meta.OpenGraph.Images = []Image{{URL: img, Width: 1200, Height: 630, Alt: ogTitle}}
		meta.Twitter.Images = []string{img}
	}
	if p.NoIndex {
		meta.Robots = Robots{}
	}
	return meta
}

// OGLocale maps a locale code to its Open Graph form.
func OGLocale(locale string) string {
	switch locale {
	case "en":
		return "en_US"
	case "ar":
		return "ar_AR"
	default:
		return strings.ReplaceAll(locale, "-", "_")
	}
}

// WithLocale sets the Open Graph locale and hreflang alternates for the page.
// alternates maps locale to absolute URL; defaultLocale also becomes x-default.
func WithLocale(meta Meta, locale, defaultLocale string, locales []string, alternates map[string]string) Meta {
	meta.OpenGraph.Locale = OGLocale(locale)
	meta.OpenGraph.AlternateLocales = nil
	meta.Alternates = nil
	for _, l := range locales {
		href, ok := alternates[l]
		if !ok {
			continue
		}
		meta.Alternates = append(meta.Alternates, Alternate{Hreflang: l, Href: href})
		if l != locale {
			meta.OpenGraph.AlternateLocales = append(meta.OpenGraph.AlternateLocales, OGLocale(l))
		}
	}
	if href, ok := alternates[defaultLocale]; ok {
		meta.Alternates = append(meta.Alternates, Alternate{Hreflang: "x-default", Href: href})
	}
	return meta
}
