package nav

import (
	"path"
	"strings"
)

// Item represents a navigation entry. Path is locale-independent ("/about").
type Item struct {
	Path     string
	LabelKey string // i18n key, e.g. "nav.about"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Alternate links the current page in another locale.
type Alternate struct {
	Lang     string
	LabelKey string
	Href     string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/pricing", LabelKey: "nav.pricing"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// Legal lists the footer legal pages.
var Legal = []Item{
	{Path: "/privacy", LabelKey: "nav.privacy"},
	{Path: "/terms", LabelKey: "nav.terms"},
}

// Secondary lists pages linked from calls to action rather than the main menu.
var Secondary = []Item{
	{Path: "/quote", LabelKey: "nav.quote"},
}

// LocalizedPath prefixes an app-relative path with the locale segment.
// Absolute URLs, protocol-relative URLs and fragments are returned unchanged.
func LocalizedPath(lang, p string) string {
	if lang == "" || p == "" {
		return p
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return p
	}
	if p == "/" {
		return "/" + lang
	}
	if p == "/"+lang || strings.HasPrefix(p, "/"+lang+"/") {
		return p
	}
	return "/" + lang + p
}

// SplitLocale separates a leading locale segment from the rest of the path.
// ok is false when the first segment is not one of supported.
func SplitLocale(p string, supported []string) (lang, rest string, ok bool) {
	trimmed := strings.TrimPrefix(p, "/")
	seg, tail, _ := strings.Cut(trimmed, "/")
	for _, l := range supported {
		if seg == l {
			rest = "/" + tail
			if tail == "" {
				rest = "/"
			}
			return l, rest, true
		}
	}
	return "", p, false
}

// Build renders navigation items with active state given the locale-independent current path.
func Build(lang, currentPath string, items []Item) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	out := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		out = append(out, RenderedItem{
			Href:     LocalizedPath(lang, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/services" or "/services/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Languages builds the language switcher: the same page in every supported locale.
func Languages(current, currentPath string, supported []string) []Alternate {
	out := make([]Alternate, 0, len(supported))
	for _, l := range supported {
		out = append(out, Alternate{
			Lang:     l,
			LabelKey: "common.languages." + l,
			Href:     LocalizedPath(l, currentPath),
			Active:   l == current,
		})
	}
	return out
}

// Breadcrumbs builds breadcrumb entries from the locale-independent path.
// Rules:
// - Always start with Home
// - For known top-level sections, use nav label keys
// - For deeper segments, use a prettified segment label
func Breadcrumbs(lang, currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: LocalizedPath(lang, "/"), LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return crumbs
	}

	top := "/" + parts[0]
	labelKey := ""
	for _, it := range append(append(append([]Item{}, Main...), Legal...), Secondary...) {
		if it.Path == top {
			labelKey = it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: LocalizedPath(lang, top), LabelKey: labelKey, Label: titleFromSegment(parts[0]), Active: len(parts) == 1})

	href := top
	for i := 1; i < len(parts); i++ {
		href = href + "/" + parts[i]
		crumbs = append(crumbs, Crumb{
			Href:   LocalizedPath(lang, href),
			Label:  titleFromSegment(parts[i]),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
