package main

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/observability"
	"finitefield.org/marketing-web/internal/seo"
	"finitefield.org/marketing-web/public"
)

// RobotsHandler serves robots.txt.
func (a *App) RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = io.WriteString(w, seo.RobotsTxt(a.cfg))
}

// SitemapHandler serves sitemap.xml for every locale and static route.
func (a *App) SitemapHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := seo.Sitemap(a.cfg, seo.StaticRoutes, a.now()).WriteXML(&buf); err != nil {
		observability.FromContext(r.Context()).Error("sitemap render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = buf.WriteTo(w)
}

// LogoHandler serves the logo referenced by the Organization structured data.
func (a *App) LogoHandler(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(public.FS, "logo.png")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(data)
}
