// Package content embeds the markdown documents served under the legal pages.
package content

import "embed"

//go:embed legal
var FS embed.FS
