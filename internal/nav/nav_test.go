package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalizedPath(t *testing.T) {
	cases := []struct{ lang, in, want string }{
		{"en", "/", "/en"},
		{"ar", "/contact", "/ar/contact"},
		{"ar", "/ar/contact", "/ar/contact"},
		{"en", "https://example.com/x", "https://example.com/x"},
		{"en", "//cdn.example.com/x", "//cdn.example.com/x"},
		{"en", "#pricing", "#pricing"},
		{"", "/about", "/about"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, LocalizedPath(c.lang, c.in), "LocalizedPath(%q, %q)", c.lang, c.in)
	}
}

func TestSplitLocale(t *testing.T) {
	supported := []string{"ar", "en"}
	lang, rest, ok := SplitLocale("/ar/services", supported)
	require.True(t, ok)
	require.Equal(t, "ar", lang)
	require.Equal(t, "/services", rest)

	lang, rest, ok = SplitLocale("/en", supported)
	require.True(t, ok)
	require.Equal(t, "en", lang)
	require.Equal(t, "/", rest)

	_, rest, ok = SplitLocale("/fr/services", supported)
	require.False(t, ok)
	require.Equal(t, "/fr/services", rest)
}

func TestBuildMarksActive(t *testing.T) {
	items := Build("ar", "/services", Main)
	require.Len(t, items, len(Main))
	for _, it := range items {
		require.Equal(t, it.Href == "/ar/services", it.Active, it.Href)
	}
}

func TestLanguages(t *testing.T) {
	alts := Languages("en", "/pricing", []string{"ar", "en"})
	require.Equal(t, []Alternate{
		{Lang: "ar", LabelKey: "common.languages.ar", Href: "/ar/pricing"},
		{Lang: "en", LabelKey: "common.languages.en", Href: "/en/pricing", Active: true},
	}, alts)
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("en", "/privacy")
	require.Len(t, crumbs, 2)
	require.Equal(t, "/en", crumbs[0].Href)
	require.Equal(t, "nav.privacy", crumbs[1].LabelKey)
	require.True(t, crumbs[1].Active)

	deep := Breadcrumbs("ar", "/services/web-design")
	require.Len(t, deep, 3)
	require.Equal(t, "/ar/services/web-design", deep[2].Href)
	require.Equal(t, "Web design", deep[2].Label)

	home := Breadcrumbs("en", "/")
	require.Len(t, home, 1)
	require.True(t, home[0].Active)
}
