package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"finitefield.org/marketing-web/internal/cms"
	handlersPkg "finitefield.org/marketing-web/internal/handlers"
	mw "finitefield.org/marketing-web/internal/middleware"
	"finitefield.org/marketing-web/internal/seo"
)

// Legal pages embed a per-visitor CSRF token.
const legalCacheControl = "private, max-age=600"

// LegalHandler renders a markdown legal document. Responses carry
// Last-Modified and an ETag; a matching If-None-Match yields 304.
func (a *App) LegalHandler(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := a.translator(r)
		page, err := a.content.GetPage(r.Context(), "legal", slug, t.Lang())
		if err != nil {
			if errors.Is(err, cms.ErrNotFound) {
				a.NotFoundHandler(w, r)
				return
			}
			a.renderError(w, r, http.StatusInternalServerError, err)
			return
		}

		session := mw.GetSession(r)
		etag := legalETag(t.Lang(), page, session.Consent, mw.CSRFToken(r))
		modified := page.UpdatedAt
		if modified.IsZero() {
			modified = a.started
		}
		w.Header().Set("Cache-Control", legalCacheControl)
		w.Header().Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
		w.Header().Set("ETag", etag)
		if mw.NotModified(r, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		data := a.pageData(r, t, "/"+slug, seo.PageSEO{
			Title:       page.Title,
			Description: page.Description,
		})
		legal := handlersPkg.BuildLegal(t, page)
		data.Legal = &legal
		a.render(w, r, http.StatusOK, "legal", data)
	}
}

// legalETag covers the document and the per-visitor values rendered into the page.
func legalETag(lang string, page cms.Page, consent, csrf string) string {
	h := sha256.New()
	for _, part := range []string{
		lang,
		page.Lang,
		page.Title,
		page.Description,
		page.UpdatedAt.Format(time.RFC3339),
		string(page.HTML),
		consent,
		csrf,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`
}
