package seo

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"

	"finitefield.org/marketing-web/internal/config"
)

// Route is one locale-independent sitemap path.
type Route struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// StaticRoutes are the pages listed for every locale. Home is crawled weekly
// with top priority, everything else monthly.
var StaticRoutes = []Route{
	{Path: "", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/about", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/services", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/pricing", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/contact", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/privacy", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/terms", ChangeFreq: "monthly", Priority: 0.8},
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Links      []XHTMLLink `xml:"xhtml:link"`
}

type XHTMLLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// LocaleURL returns the absolute URL of route in locale.
func LocaleURL(siteURL, locale, route string) string {
	return Absolute(siteURL, "/"+locale+route)
}

// Sitemap lists every locale × route with hreflang alternates for the route.
func Sitemap(cfg config.Config, routes []Route, now time.Time) URLSet {
	set := URLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	lastMod := now.UTC().Format("2006-01-02")
	for _, locale := range cfg.Site.Locales {
		for _, r := range routes {
			u := URL{
				Loc:        LocaleURL(cfg.Site.URL, locale, r.Path),
				LastMod:    lastMod,
				ChangeFreq: r.ChangeFreq,
				Priority:   formatPriority(r.Priority),
			}
			for _, alt := range cfg.Site.Locales {
				u.Links = append(u.Links, XHTMLLink{Rel: "alternate", Hreflang: alt, Href: LocaleURL(cfg.Site.URL, alt, r.Path)})
			}
			set.URLs = append(set.URLs, u)
		}
	}
	return set
}

func formatPriority(p float64) string {
	if p <= 0 {
		return ""
	}
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// WriteXML encodes the set with the XML header.
func (s URLSet) WriteXML(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Flush()
}
