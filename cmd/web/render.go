package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	handlersPkg "finitefield.org/marketing-web/internal/handlers"
	"finitefield.org/marketing-web/internal/i18n"
	"finitefield.org/marketing-web/internal/marketing"
	"finitefield.org/marketing-web/internal/nav"
	"finitefield.org/marketing-web/internal/observability"
)

// views holds one template set per page. Each set is the shared layouts,
// partials and sections plus the page's own "body" and "content" definitions.
// Parsed sets are only cloned, never executed, so per-request funcs can be bound.
type views struct {
	fsys fs.FS
	// dev reparses from fsys on every lookup.
	dev  bool
	sets map[string]*template.Template
}

func newViews(fsys fs.FS, dev bool) (*views, error) {
	sets, err := parseTemplates(fsys)
	if err != nil {
		return nil, err
	}
	return &views{fsys: fsys, dev: dev, sets: sets}, nil
}

// placeholderFuncs are replaced per request; they exist so parsing succeeds.
func placeholderFuncs() template.FuncMap {
	return template.FuncMap{
		"t":        func(key string) string { return key },
		"tf":       func(key string, _ ...any) (string, error) { return key, nil },
		"localize": func(p string) string { return p },
		"icon":     marketing.Icon,
		"dict":     dict,
	}
}

func translatorFuncs(t i18n.Translator) template.FuncMap {
	return template.FuncMap{
		"t": t.T,
		"tf": func(key string, kv ...any) (string, error) {
			data, err := dict(kv...)
			if err != nil {
				return "", err
			}
			return t.Tf(key, data), nil
		},
		"localize": func(p string) string { return nav.LocalizedPath(t.Lang(), p) },
	}
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		out[k] = kv[i+1]
	}
	return out, nil
}

func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("_root").Funcs(placeholderFuncs()).ParseFS(fsys,
		"layouts/*.tmpl", "partials/*.tmpl", "sections/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse shared templates: %w", err)
	}
	pages, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.New("no page templates found")
	}
	sets := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(fsys, p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		sets[strings.TrimSuffix(path.Base(p), ".tmpl")] = set
	}
	return sets, nil
}

// lookup returns an executable clone of page bound to t.
func (v *views) lookup(page string, t i18n.Translator) (*template.Template, error) {
	sets := v.sets
	if v.dev {
		fresh, err := parseTemplates(v.fsys)
		if err != nil {
			return nil, err
		}
		sets = fresh
	}
	set, ok := sets[page]
	if !ok {
		return nil, fmt.Errorf("template %q not found", page)
	}
	clone, err := set.Clone()
	if err != nil {
		return nil, err
	}
	return clone.Funcs(translatorFuncs(t)), nil
}

// render executes the base layout for page.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, page string, data handlersPkg.PageData) {
	a.execute(w, r, status, page, "base", a.bundle.Translator(data.Lang), data)
}

// renderFragment executes a single named template, used for htmx swaps.
func (a *App) renderFragment(w http.ResponseWriter, r *http.Request, page, name string, t i18n.Translator, data any) {
	a.execute(w, r, http.StatusOK, page, name, t, data)
}

func (a *App) execute(w http.ResponseWriter, r *http.Request, status int, page, name string, t i18n.Translator, data any) {
	logger := observability.FromContext(r.Context())
	tmpl, err := a.views.lookup(page, t)
	if err != nil {
		logger.Error("template lookup failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("template exec failed", zap.String("page", page), zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
