package main

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/contact"
	handlersPkg "finitefield.org/marketing-web/internal/handlers"
	"finitefield.org/marketing-web/internal/i18n"
	mw "finitefield.org/marketing-web/internal/middleware"
	"finitefield.org/marketing-web/internal/nav"
	"finitefield.org/marketing-web/internal/observability"
	"finitefield.org/marketing-web/internal/seo"
)

const maxFormBytes = 64 << 10

// ContactHandler renders the contact page. The form is shown only when the
// contact form feature is enabled.
func (a *App) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var form *handlersPkg.FormView
	if a.contact.Available() == nil {
		t := a.translator(r)
		f := handlersPkg.BuildForm(t, handlersPkg.FormContact, mw.CSRFToken(r), contact.State{}, nil)
		form = &f
	}
	a.renderForm(w, r, http.StatusOK, handlersPkg.FormContact, form)
}

// ContactSubmitHandler validates and delivers the contact form.
func (a *App) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	a.submitForm(w, r, handlersPkg.FormContact)
}

// QuoteHandler renders the quote request form.
func (a *App) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	if errors.Is(a.contact.Available(), contact.ErrDisabled) {
		a.NotFoundHandler(w, r)
		return
	}
	t := a.translator(r)
	f := handlersPkg.BuildForm(t, handlersPkg.FormQuote, mw.CSRFToken(r), contact.State{}, nil)
	a.renderForm(w, r, http.StatusOK, handlersPkg.FormQuote, &f)
}

// QuoteSubmitHandler validates and delivers the quote form.
func (a *App) QuoteSubmitHandler(w http.ResponseWriter, r *http.Request) {
	a.submitForm(w, r, handlersPkg.FormQuote)
}

func (a *App) submitForm(w http.ResponseWriter, r *http.Request, kind string) {
	if errors.Is(a.contact.Available(), contact.ErrDisabled) {
		a.NotFoundHandler(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	t := a.translator(r)
	lang := t.Lang()

	var state contact.State
	if kind == handlersPkg.FormQuote {
		state = a.contact.SubmitQuote(r.Context(), lang, contact.QuoteFromForm(r.PostForm))
	} else {
		state = a.contact.SubmitMessage(r.Context(), lang, contact.MessageFromForm(r.PostForm))
	}
	a.trackForm(r, kind, state)

	form := handlersPkg.BuildForm(t, kind, mw.CSRFToken(r), state, r.PostForm)
	if mw.IsHTMX(r.Context()) {
		a.renderFragment(w, r, kind, "contact_form", t, form)
		return
	}
	status := http.StatusOK
	if len(state.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	a.renderForm(w, r, status, kind, &form)
}

func (a *App) renderForm(w http.ResponseWriter, r *http.Request, status int, kind string, form *handlersPkg.FormView) {
	t := a.translator(r)
	site := a.cfg.Site
	var data handlersPkg.PageData
	if kind == handlersPkg.FormQuote {
		data = a.pageData(r, t, "/quote", seo.PageSEO{
			Title:       t.T("seo.quote.title"),
			Description: t.T("seo.quote.description"),
		})
	} else {
		data = a.pageData(r, t, "/contact", seo.PageSEO{
			Title:       t.T("seo.contact.title"),
			Description: t.T("seo.contact.description"),
		}, seo.LocalBusiness(site, seo.LocalBusinessInfo{}))
	}
	data.Form = form
	data.Status = status
	a.render(w, r, status, kind, data)
}

func (a *App) trackForm(r *http.Request, kind string, state contact.State) {
	if state.Status == contact.StatusIdle {
		return
	}
	if err := a.tracker.TrackFormSubmission(r.Context(), kind, state.Status == contact.StatusSuccess); err != nil {
		observability.FromContext(r.Context()).Warn("track form submission", zap.String("form", kind), zap.Error(err))
	}
}

// NewsletterHandler subscribes the posted email. htmx requests get the signup
// fragment back; plain posts are redirected to the page they came from.
func (a *App) NewsletterHandler(w http.ResponseWriter, r *http.Request) {
	if !a.cfg.Features.Newsletter.Enabled {
		a.NotFoundHandler(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, err)
		return
	}
	t := a.translator(r)
	signup := contact.NewsletterFromForm(r.PostForm)
	state := contact.SubscribeNewsletter(r.Context(), a.subscriber, t.Lang(), signup)
	a.trackForm(r, "newsletter", state)

	if mw.IsHTMX(r.Context()) {
		view := handlersPkg.BuildNewsletter(t, mw.CSRFToken(r), state, signup.Email)
		a.renderFragment(w, r, "home", "newsletter", t, view)
		return
	}
	http.Redirect(w, r, newsletterReturnPath(r, t, state), http.StatusSeeOther)
}

func newsletterReturnPath(r *http.Request, t i18n.Translator, state contact.State) string {
	target := nav.LocalizedPath(t.Lang(), "/")
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && ref.Path != "" {
		if mw.SameOrigin(ref.Path) {
			target = ref.Path
		}
	}
	result := "success"
	if state.Status != contact.StatusSuccess {
		result = "error"
	}
	return target + "?newsletter=" + result + "#newsletter"
}
