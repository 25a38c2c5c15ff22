package i18n

import "strings"

var rtlLanguages = map[string]struct{}{
	"ar": {},
	"fa": {},
	"he": {},
	"ur": {},
}

// Direction returns "rtl" for right-to-left locales and "ltr" otherwise.
func Direction(locale string) string {
	if IsRTL(locale) {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether the locale's base language is written right to left.
func IsRTL(locale string) bool {
	base := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(base, "-_"); i != -1 {
		base = base[:i]
	}
	_, ok := rtlLanguages[base]
	return ok
}
