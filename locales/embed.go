// Package locales embeds the translation catalogs.
package locales

import "embed"

//go:embed *.yaml
var FS embed.FS
