package main

import (
	"net/http"

	"go.uber.org/zap"

	handlersPkg "finitefield.org/marketing-web/internal/handlers"
	"finitefield.org/marketing-web/internal/i18n"
	mw "finitefield.org/marketing-web/internal/middleware"
	"finitefield.org/marketing-web/internal/observability"
	"finitefield.org/marketing-web/internal/seo"
)

func (a *App) translator(r *http.Request) i18n.Translator {
	return a.bundle.Translator(mw.Lang(r, a.bundle.Fallback()))
}

// pageData builds the layout for path. jsonld payloads are rendered into the
// head together with a BreadcrumbList for every indexable page below home.
func (a *App) pageData(r *http.Request, t i18n.Translator, path string, page seo.PageSEO, jsonld ...any) handlersPkg.PageData {
	session := mw.GetSession(r)
	layout := a.builder.Layout(handlersPkg.LayoutInput{
		Lang:      t.Lang(),
		Path:      path,
		CSRFToken: mw.CSRFToken(r),
		Consent:   session.Consent,
		SEO:       page,
		Now:       a.now(),
	})
	// plain newsletter posts redirect back with the outcome in the query
	if n := layout.Newsletter; n != nil {
		switch r.URL.Query().Get("newsletter") {
		case "success":
			n.Message = t.T("common.newsletter.success")
		case "error":
			n.Error = t.T("common.newsletter.error")
		}
	}
	if len(layout.Breadcrumbs) > 0 && !page.NoIndex {
		jsonld = append(jsonld, seo.BreadcrumbList(a.builder.BreadcrumbJSONLD(layout.Breadcrumbs)))
	}
	tags, err := seo.ScriptTags(r.Context(), jsonld...)
	if err != nil {
		observability.FromContext(r.Context()).Warn("structured data render failed", zap.String("path", path), zap.Error(err))
	}
	layout.JSONLD = tags
	return handlersPkg.PageData{Layout: layout, Status: http.StatusOK}
}

// HomeHandler renders the landing page.
func (a *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(r)
	site := a.cfg.Site
	data := a.pageData(r, t, "/", seo.PageSEO{Description: t.T("seo.home.description")},
		seo.Organization(site), seo.WebSite(site))
	home := handlersPkg.BuildHomeData(t)
	data.Home = &home
	a.render(w, r, http.StatusOK, "home", data)
}

// AboutHandler renders the about page.
func (a *App) AboutHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(r)
	data := a.pageData(r, t, "/about", seo.PageSEO{
		Title:       t.T("seo.about.title"),
		Description: t.T("seo.about.description"),
	})
	about := handlersPkg.BuildAboutData(t)
	data.About = &about
	a.render(w, r, http.StatusOK, "about", data)
}

// ServicesHandler renders the services page.
func (a *App) ServicesHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(r)
	data := a.pageData(r, t, "/services", seo.PageSEO{
		Title:       t.T("seo.services.title"),
		Description: t.T("seo.services.description"),
		Image:       "/assets/img/services.svg",
	})
	services := handlersPkg.BuildServicesData(t)
	data.Services = &services
	a.render(w, r, http.StatusOK, "services", data)
}

// PricingHandler renders plans and the FAQ, which is also published as FAQPage.
func (a *App) PricingHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(r)
	pricing := handlersPkg.BuildPricingData(t)
	faq := make([]seo.FAQEntry, 0, len(pricing.FAQ.Items))
	for _, it := range pricing.FAQ.Items {
		faq = append(faq, seo.FAQEntry{Question: it.Question, Answer: it.Answer})
	}
	data := a.pageData(r, t, "/pricing", seo.PageSEO{
		Title:       t.T("seo.pricing.title"),
		Description: t.T("seo.pricing.description"),
	}, seo.FAQPage(faq))
	data.Pricing = &pricing
	a.render(w, r, http.StatusOK, "pricing", data)
}

// NotFoundHandler renders the localized 404 page.
func (a *App) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	t := a.translator(r)
	data := a.pageData(r, t, mw.PathFromContext(r.Context()), seo.PageSEO{
		Title:   t.T("common.notFound.title"),
		NoIndex: true,
	})
	data.Breadcrumbs = nil
	data.Status = http.StatusNotFound
	a.render(w, r, http.StatusNotFound, "notfound", data)
}

// renderError logs err and renders the generic error page with status.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.FromContext(r.Context()).Error("request failed", zap.Int("status", status), zap.Error(err))
	t := a.translator(r)
	data := a.pageData(r, t, mw.PathFromContext(r.Context()), seo.PageSEO{
		Title:   t.T("common.error.title"),
		NoIndex: true,
	})
	data.Breadcrumbs = nil
	data.Status = status
	a.render(w, r, status, "error", data)
}

