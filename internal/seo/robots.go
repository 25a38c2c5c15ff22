package seo

import (
	"strings"

	"finitefield.org/marketing-web/internal/config"
)

// RobotsTxt renders robots.txt: allow everything except the configured
// disallow prefixes and point crawlers at the sitemap.
func RobotsTxt(cfg config.Config) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range cfg.SEO.RobotsDisallow {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\nSitemap: " + Absolute(cfg.Site.URL, "/sitemap.xml") + "\n")
	return b.String()
}
