package i18n

import "strings"

// Translator binds a bundle to one locale and an optional key namespace,
// so section content can use keys relative to its namespace ("hero.headline"
// under "marketing").
type Translator struct {
	bundle *Bundle
	lang   string
	ns     string
}

// Translator returns a root translator for lang.
func (b *Bundle) Translator(lang string) Translator {
	if !b.IsSupported(lang) {
		lang = b.fallback
	}
	return Translator{bundle: b, lang: lang}
}

// Namespace returns a translator whose keys are resolved under ns.
func (t Translator) Namespace(ns string) Translator {
	ns = strings.Trim(ns, ".")
	if t.ns != "" && ns != "" {
		ns = t.ns + "." + ns
	} else if ns == "" {
		ns = t.ns
	}
	return Translator{bundle: t.bundle, lang: t.lang, ns: ns}
}

// Lang returns the bound locale.
func (t Translator) Lang() string { return t.lang }

// Dir returns the text direction of the bound locale.
func (t Translator) Dir() string { return Direction(t.lang) }

// T translates key. Empty keys translate to the empty string.
func (t Translator) T(key string) string {
	return t.Tf(key, nil)
}

// Tf translates key with template data.
func (t Translator) Tf(key string, data map[string]any) string {
	if key == "" || t.bundle == nil {
		return key
	}
	full := key
	if t.ns != "" {
		full = t.ns + "." + key
	}
	out := t.bundle.Tf(t.lang, full, data)
	if out == full {
		// missing messages render the relative key
		return key
	}
	return out
}
