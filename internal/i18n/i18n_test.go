package i18n

import (
	"testing"
	"testing/fstest"

	"finitefield.org/marketing-web/locales"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte(`
nav:
  home: Home
marketing:
  hero:
    headline: Build faster
  features:
    items:
      - title: Fast
      - title: Secure
footer:
  rights: "© {{.Year}} {{.Site}}"
only:
  english: English only
`)},
		"ar.yaml": {Data: []byte(`
nav:
  home: الرئيسية
marketing:
  hero:
    headline: ""
`)},
	}
	b, err := Load(fsys, "en", []string{"en", "ar"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := testBundle(t)
	if got := b.Resolve("ar;q=0.8, en;q=0.9"); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
	if got := b.Resolve("ar-EG,ar;q=0.9"); got != "ar" {
		t.Fatalf("expected ar, got %s", got)
	}
}

func TestResolveFallsBack(t *testing.T) {
	b := testBundle(t)
	for _, header := range []string{"", "fr-FR", "not a header;;"} {
		if got := b.Resolve(header); got != "en" {
			t.Fatalf("Resolve(%q) = %s, want en", header, got)
		}
	}
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	b := testBundle(t)
	if got := b.T("ar", "nav.home"); got != "الرئيسية" {
		t.Fatalf("unexpected ar nav.home: %q", got)
	}
	// empty strings are treated as missing
	if got := b.T("ar", "marketing.hero.headline"); got != "Build faster" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := b.T("ar", "only.english"); got != "English only" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := b.T("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key, got %q", got)
	}
	if got := b.T("en", "marketing.features.items.1.title"); got != "Secure" {
		t.Fatalf("expected sequence index lookup, got %q", got)
	}
}

func TestTfTemplateData(t *testing.T) {
	b := testBundle(t)
	got := b.Tf("en", "footer.rights", map[string]any{"Year": 2026, "Site": "Acme"})
	if got != "© 2026 Acme" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestTfFallsBackWithTemplateData(t *testing.T) {
	b := testBundle(t)
	got := b.Tf("ar", "footer.rights", map[string]any{"Year": 2026, "Site": "Acme"})
	if got != "© 2026 Acme" {
		t.Fatalf("expected english template, got %q", got)
	}
	if got := b.T("fr", "only.english"); got != "English only" {
		t.Fatalf("unsupported locale should use the default catalog, got %q", got)
	}
}

func TestTranslatorNamespace(t *testing.T) {
	b := testBundle(t)
	tr := b.Translator("ar").Namespace("marketing")
	if got := tr.T("hero.headline"); got != "Build faster" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := tr.Namespace("hero").T("missing"); got != "missing" {
		t.Fatalf("missing keys should render relative key, got %q", got)
	}
	if tr.Dir() != "rtl" || tr.Lang() != "ar" {
		t.Fatalf("unexpected translator state: %s %s", tr.Lang(), tr.Dir())
	}
	if got := b.Translator("de").Lang(); got != "en" {
		t.Fatalf("unsupported locale should fall back, got %s", got)
	}
}

func TestDirection(t *testing.T) {
	cases := map[string]string{"ar": "rtl", "ar-EG": "rtl", "he_IL": "rtl", "en": "ltr", "": "ltr", "fr": "ltr"}
	for in, want := range cases {
		if got := Direction(in); got != want {
			t.Fatalf("Direction(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLoadRequiresFallbackCatalog(t *testing.T) {
	_, err := Load(fstest.MapFS{"ar.yaml": {Data: []byte("a: b")}}, "en", []string{"en", "ar"})
	if err == nil {
		t.Fatal("expected error when fallback catalog is missing")
	}
}

func TestShippedCatalogsAreComplete(t *testing.T) {
	b, err := Load(locales.FS, "en", []string{"en", "ar"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for key := range b.keys["en"] {
		if !b.Has("ar", key) {
			t.Errorf("ar catalog missing %s", key)
		}
	}
}
