package config

import "strings"

// SEO carries the default metadata applied to every page.
type SEO struct {
	TitleTemplate      string
	DefaultTitle       string
	DefaultDescription string
	OpenGraph          OpenGraphDefaults
	Twitter            TwitterDefaults
	Robots             RobotsDefaults
	RobotsDisallow     []string
}

// OpenGraphDefaults are the site-wide Open Graph values.
type OpenGraphDefaults struct {
	Type     string
	Locale   string
	SiteName string
}

// TwitterDefaults are the site-wide Twitter card values.
type TwitterDefaults struct {
	Card    string
	Creator string
}

// RobotsDefaults are the default indexing directives.
type RobotsDefaults struct {
	Index  bool
	Follow bool
}

// NewSEO derives SEO defaults from the site configuration.
func NewSEO(site Site) SEO {
	return SEO{
		TitleTemplate:      "%s | " + site.Name,
		DefaultTitle:       site.Name,
		DefaultDescription: site.Description,
		OpenGraph: OpenGraphDefaults{
			Type:     "website",
			Locale:   "en_US",
			SiteName: site.Name,
		},
		Twitter: TwitterDefaults{
			Card:    "summary_large_image",
			Creator: site.Social.Twitter,
		},
		Robots:         RobotsDefaults{Index: true, Follow: true},
		RobotsDisallow: []string{"/api/", "/admin/"},
	}
}

// Title applies the title template. An empty page title yields the default title.
func (s SEO) Title(page string) string {
	page = strings.TrimSpace(page)
	if page == "" {
		return s.DefaultTitle
	}
	if !strings.Contains(s.TitleTemplate, "%s") {
		return page
	}
	return strings.Replace(s.TitleTemplate, "%s", page, 1)
}
