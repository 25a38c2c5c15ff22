package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Bundle holds the message catalogs for every supported locale.
type Bundle struct {
	bundle    *goi18n.Bundle
	fallback  string
	supported []string
	order     []string
	matcher   language.Matcher
	keys      map[string]map[string]struct{}
}

// Load reads `<locale>.yaml` catalogs from fsys. Nested mappings are flattened into
// dotted message IDs and sequence items use their index, so `features.items.0.title`
// addresses the first feature title. The fallback catalog is mandatory.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"en", "ar"}
	}
	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("i18n: parse fallback locale %q: %w", fallback, err)
	}

	b := &Bundle{
		bundle:   goi18n.NewBundle(fallbackTag),
		fallback: fallback,
		keys:     map[string]map[string]struct{}{},
	}
	// the fallback leads the matcher so it wins when nothing matches
	tags := []language.Tag{fallbackTag}
	seen := map[string]struct{}{fallback: {}}
	b.supported = append(b.supported, fallback)
	for _, l := range supported {
		if _, dup := seen[l]; dup {
			continue
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %q: %w", l, err)
		}
		seen[l] = struct{}{}
		tags = append(tags, tag)
		b.supported = append(b.supported, l)
	}
	b.matcher = language.NewMatcher(tags)
	b.order = append([]string(nil), b.supported...)

	for i, l := range b.order {
		raw, err := fs.ReadFile(fsys, l+".yaml")
		if err != nil {
			// allow missing catalogs for non-default locales
			if l != fallback && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		flat := map[string]string{}
		flatten("", tree, flat)
		msgs := make([]*goi18n.Message, 0, len(flat))
		keys := make(map[string]struct{}, len(flat))
		for id, text := range flat {
			if strings.TrimSpace(text) == "" {
				continue
			}
			msgs = append(msgs, &goi18n.Message{ID: id, Other: text})
			keys[id] = struct{}{}
		}
		if err := b.bundle.AddMessages(tags[i], msgs...); err != nil {
			return nil, fmt.Errorf("i18n: add messages %s: %w", l, err)
		}
		b.keys[l] = keys
	}
	if _, ok := b.keys[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
	}
	sort.Strings(b.supported)
	return b, nil
}

func flatten(prefix string, node any, out map[string]string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			flatten(join(k), child, out)
		}
	case []any:
		for i, child := range v {
			flatten(join(strconv.Itoa(i)), child, out)
		}
	case nil:
		return
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(v)
		}
	}
}

// Supported returns the supported locales in sorted order.
func (b *Bundle) Supported() []string {
	out := make([]string, len(b.supported))
	copy(out, b.supported)
	return out
}

// Fallback returns the configured fallback locale.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is one of the configured locales.
func (b *Bundle) IsSupported(lang string) bool {
	for _, l := range b.supported {
		if l == lang {
			return true
		}
	}
	return false
}

// Has reports whether lang has its own message for key, without falling back.
func (b *Bundle) Has(lang, key string) bool {
	_, ok := b.keys[lang][key]
	return ok
}

// T returns the translation for key in lang, falling back to the default locale and finally the key.
func (b *Bundle) T(lang, key string) string {
	return b.Tf(lang, key, nil)
}

// Tf is T with template data; messages reference values as {{.Name}}.
func (b *Bundle) Tf(lang, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	chain := []string{b.fallback}
	if lang != "" && lang != b.fallback {
		chain = []string{lang, b.fallback}
	}
	for _, l := range chain {
		if !b.Has(l, key) {
			continue
		}
		msg, err := goi18n.NewLocalizer(b.bundle, l).Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
		if err == nil && msg != "" {
			return msg
		}
	}
	return key
}

// Resolve chooses the best supported locale from an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	acceptLang = strings.TrimSpace(acceptLang)
	if acceptLang == "" {
		return b.fallback
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(desired) == 0 {
		return b.fallback
	}
	for _, tag := range desired {
		_, idx, conf := b.matcher.Match(tag)
		if conf == language.No {
			continue
		}
		if l := b.localeAt(idx); l != "" {
			return l
		}
	}
	return b.fallback
}

// localeAt maps a matcher index back to the locale code. Index 0 is always the fallback.
func (b *Bundle) localeAt(idx int) string {
	if idx < 0 || idx >= len(b.order) {
		return ""
	}
	return b.order[idx]
}
