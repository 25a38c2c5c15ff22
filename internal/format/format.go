package format

import (
	"strconv"
	"strings"
	"time"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// FmtDate formats t as a long date for the given locale.
// Example: FmtDate(t, "en") => "January 15, 2026", FmtDate(t, "ar") => "15 يناير 2026"
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "ar":
		return strconv.Itoa(t.Day()) + " " + arabicMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
	default:
		return t.Format("January 2, 2006")
	}
}

// FmtISODate formats t for machine-readable attributes such as <time datetime>.
func FmtISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
