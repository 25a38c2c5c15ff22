package handlers

import (
	"html/template"
	"time"

	"finitefield.org/marketing-web/internal/config"
	"finitefield.org/marketing-web/internal/i18n"
	"finitefield.org/marketing-web/internal/marketing"
	"finitefield.org/marketing-web/internal/nav"
	"finitefield.org/marketing-web/internal/seo"
)

// NavLink is a resolved navigation entry.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// LanguageLink points at the current page in another locale.
type LanguageLink struct {
	Lang   string
	Label  string
	Href   string
	Dir    string
	Active bool
}

// Layout carries everything the base, marketing and legal layouts render.
type Layout struct {
	Lang string
	Dir  string
	// Path is the locale-independent request path.
	Path     string
	HomeHref string
	Site     config.Site
	Meta     seo.Meta
	JSONLD   template.HTML

	Nav         []NavLink
	LegalNav    []NavLink
	QuoteLink   *NavLink
	Languages   []LanguageLink
	Breadcrumbs []NavLink
	Copyright   string

	Integrations Integrations
	Anim         marketing.Animations
	Newsletter   *NewsletterView
	CSRFToken    string
}

// LayoutInput are the per-request values a layout is built from.
type LayoutInput struct {
	Lang      string
	Path      string
	CSRFToken string
	Consent   string
	SEO       seo.PageSEO
	JSONLD    template.HTML
	Now       time.Time
}

// Builder assembles view models from configuration and translations.
type Builder struct {
	cfg    config.Config
	bundle *i18n.Bundle
}

// NewBuilder returns a Builder for cfg and bundle.
func NewBuilder(cfg config.Config, bundle *i18n.Bundle) Builder {
	return Builder{cfg: cfg, bundle: bundle}
}

// Config returns the configuration the builder renders with.
func (b Builder) Config() config.Config { return b.cfg }

// Translator returns the root translator for lang.
func (b Builder) Translator(lang string) i18n.Translator { return b.bundle.Translator(lang) }

// Layout builds the shared layout view model.
func (b Builder) Layout(in LayoutInput) Layout {
	t := b.bundle.Translator(in.Lang)
	lang := t.Lang()
	path := in.Path
	if path == "" {
		path = "/"
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	site := b.cfg.Site

	page := in.SEO
	if page.Canonical == "" {
		page.Canonical = nav.LocalizedPath(lang, path)
	}
	alternates := make(map[string]string, len(site.Locales))
	for _, l := range site.Locales {
		alternates[l] = seo.Absolute(site.URL, nav.LocalizedPath(l, path))
	}
	meta := seo.WithLocale(seo.GeneratePageMetadata(b.cfg, page), lang, site.DefaultLocale, site.Locales, alternates)

	out := Layout{
		Lang:      lang,
		Dir:       t.Dir(),
		Path:      path,
		HomeHref:  nav.LocalizedPath(lang, "/"),
		Site:      site,
		Meta:      meta,
		JSONLD:    in.JSONLD,
		Nav:       navLinks(t, nav.Build(lang, path, nav.Main)),
		LegalNav:  navLinks(t, nav.Build(lang, path, nav.Legal)),
		Copyright: t.Tf("common.footer.rights", map[string]any{"Year": now.Year(), "Site": site.Name}),
		CSRFToken: in.CSRFToken,
	}
	out.Integrations = BuildIntegrations(b.cfg.Features, in.Consent)
	out.Anim = marketing.Animations{
		Enabled: b.cfg.Features.Animations.Enabled,
		Preset:  b.cfg.Features.Animations.Preset,
	}
	for _, alt := range nav.Languages(lang, path, site.Locales) {
		out.Languages = append(out.Languages, LanguageLink{
			Lang:   alt.Lang,
			Label:  t.T(alt.LabelKey),
			Href:   alt.Href,
			Dir:    i18n.Direction(alt.Lang),
			Active: alt.Active,
		})
	}
	if path != "/" {
		for _, c := range nav.Breadcrumbs(lang, path) {
			label := c.Label
			if c.LabelKey != "" {
				label = t.T(c.LabelKey)
			}
			out.Breadcrumbs = append(out.Breadcrumbs, NavLink{Href: c.Href, Label: label, Active: c.Active})
		}
	}
	if b.cfg.Features.ContactForm.Enabled {
		quote := navLinks(t, nav.Build(lang, path, nav.Secondary))[0]
		out.QuoteLink = &quote
	}
	if b.cfg.Features.Newsletter.Enabled {
		out.Newsletter = &NewsletterView{
			Action:    nav.LocalizedPath(lang, "/newsletter"),
			CSRFToken: in.CSRFToken,
		}
	}
	return out
}

// BreadcrumbJSONLD converts rendered breadcrumbs to structured data items.
func (b Builder) BreadcrumbJSONLD(crumbs []NavLink) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: seo.Absolute(b.cfg.Site.URL, c.Href)})
	}
	return items
}

func navLinks(t i18n.Translator, items []nav.RenderedItem) []NavLink {
	out := make([]NavLink, 0, len(items))
	for _, it := range items {
		out = append(out, NavLink{Href: it.Href, Label: t.T(it.LabelKey), Active: it.Active})
	}
	return out
}
