// Package templates embeds the html/template sources for the site.
package templates

import "embed"

//go:embed layouts partials sections pages
var FS embed.FS
