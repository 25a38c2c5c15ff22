package handlers

import (
	"html/template"

	"finitefield.org/marketing-web/internal/cms"
	"finitefield.org/marketing-web/internal/format"
	"finitefield.org/marketing-web/internal/i18n"
)

// PageData is the view model every page template receives.
type PageData struct {
	Layout

	// Optional per-page view model payloads
	Home     *HomeView
	About    *AboutView
	Services *ServicesView
	Pricing  *PricingView
	Form     *FormView
	Legal    *LegalView
	Status   int
}

// LegalView is the view model for a rendered legal document.
type LegalView struct {
	Title       string
	Description string
	Body        template.HTML
	TOC         []cms.Heading
	Updated     string
	UpdatedISO  string
	// Lang is the language the document is written in; it may differ from
	// the page locale when a translation is missing.
	Lang string
	Dir  string
}

// BuildLegal resolves a CMS page for rendering.
func BuildLegal(t i18n.Translator, page cms.Page) LegalView {
	out := LegalView{
		Title:       page.Title,
		Description: page.Description,
		Body:        page.HTML,
		TOC:         page.TOC,
		UpdatedISO:  format.FmtISODate(page.UpdatedAt),
		Lang:        page.Lang,
		Dir:         i18n.Direction(page.Lang),
	}
	if d := format.FmtDate(page.UpdatedAt, t.Lang()); d != "" {
		out.Updated = t.Tf("legal.lastUpdated", map[string]any{"Date": d})
	}
	return out
}
