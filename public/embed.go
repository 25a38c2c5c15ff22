// Package public embeds the static assets served under /assets and the site root.
package public

import "embed"

//go:embed assets logo.png
var FS embed.FS
