package main

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"finitefield.org/marketing-web/content"
	"finitefield.org/marketing-web/internal/analytics"
	"finitefield.org/marketing-web/internal/cms"
	"finitefield.org/marketing-web/internal/config"
	"finitefield.org/marketing-web/internal/contact"
	handlersPkg "finitefield.org/marketing-web/internal/handlers"
	"finitefield.org/marketing-web/internal/i18n"
	"finitefield.org/marketing-web/internal/marketing"
	mw "finitefield.org/marketing-web/internal/middleware"
	"finitefield.org/marketing-web/locales"
	"finitefield.org/marketing-web/public"
	"finitefield.org/marketing-web/templates"
)

// localizedPages are the locale-independent page paths. Unprefixed requests
// for them redirect to the visitor's locale.
var localizedPages = []string{"/about", "/services", "/pricing", "/contact", "/quote", "/privacy", "/terms"}

// validateContent checks the static marketing sections before serving.
var validateContent = marketing.ValidateAll

type appOptions struct {
	Dev bool
	// TemplatesDir is read instead of the embedded templates in dev mode.
	TemplatesDir string
	Meter        metric.Meter
	Submitter    contact.Submitter
	Subscriber   contact.Subscriber
	Now          func() time.Time
}

// App owns the long-lived collaborators shared by every handler.
type App struct {
	cfg        config.Config
	logger     *zap.Logger
	bundle     *i18n.Bundle
	builder    handlersPkg.Builder
	views      *views
	content    *cms.Client
	contact    *contact.Service
	subscriber contact.Subscriber
	tracker    *analytics.Tracker
	sessions   *mw.Sessions
	now        func() time.Time
	started    time.Time
}

func newApp(cfg config.Config, logger *zap.Logger, opts appOptions) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := validateContent(); err != nil {
		return nil, fmt.Errorf("marketing content: %w", err)
	}

	bundle, err := i18n.Load(locales.FS, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	var tmplFS fs.FS = templates.FS
	if opts.Dev {
		tmplFS = os.DirFS(opts.TemplatesDir)
	}
	v, err := newViews(tmplFS, opts.Dev)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	httpClient := &http.Client{Timeout: 5 * time.Second}
	tracker, err := analytics.FromFeature(cfg.Features.Analytics, analytics.Deps{
		Meter:       opts.Meter,
		Logger:      logger,
		HTTPClient:  httpClient,
		Development: cfg.Env.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("init analytics: %w", err)
	}

	submitter := opts.Submitter
	if submitter == nil {
		if endpoint := cfg.Features.ContactForm.Endpoint; endpoint != "" {
			submitter = contact.NewWebhookSubmitter(endpoint)
		} else {
			submitter = contact.StubSubmitter{Delay: contact.DefaultStubDelay}
		}
	}
	subscriber := opts.Subscriber
	if subscriber == nil {
		subscriber = contact.NewSubscriber(cfg.Features.Newsletter.Provider, logger)
	}

	secure := cfg.Env.IsProduction()
	return &App{
		cfg:     cfg,
		logger:  logger,
		bundle:  bundle,
		builder: handlersPkg.NewBuilder(cfg, bundle),
		views:   v,
		content: cms.NewClient(content.FS,
			cms.WithBaseURL(cfg.Env.CMSBaseURL),
			cms.WithHTTPClient(httpClient),
			cms.WithLanguages(cfg.Site.DefaultLocale, cfg.Site.Locales...),
		),
		contact:    contact.NewService(submitter, contact.WithEnabled(cfg.Features.ContactForm.Enabled)),
		subscriber: subscriber,
		tracker:    tracker,
		sessions: mw.NewSessions(mw.SessionOptions{
			SigningKey: cfg.Env.SessionSigningKey,
			Secure:     secure,
			Logger:     logger,
		}),
		now:     now,
		started: now().UTC(),
	}, nil
}

// Router builds the HTTP handler tree.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Trace)
	r.Use(mw.RequestLogger(a.logger))
	r.Use(mw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.RequestSize(maxFormBytes))
	r.Use(mw.HTMX)
	r.Use(a.sessions.Middleware)
	r.Use(mw.CSRF(a.sessions.Secure()))

	notFound := http.HandlerFunc(a.NotFoundHandler)
	r.NotFound(notFound)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	assets, err := fs.Sub(public.FS, "assets")
	if err != nil {
		a.logger.Error("static assets unavailable", zap.Error(err))
	} else {
		r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(assets)))
	}
	r.Get("/robots.txt", a.RobotsHandler)
	r.Get("/sitemap.xml", a.SitemapHandler)
	r.Get("/logo.png", a.LogoHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/events", a.EventsHandler)
		r.Post("/consent", a.ConsentHandler)
	})

	redirect := mw.RedirectToLocale(a.bundle)
	r.Get("/", redirect)
	for _, p := range localizedPages {
		r.Get(p, redirect)
	}

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(mw.LocalePrefix(a.bundle, a.sessions.Secure(), notFound))
		r.NotFound(notFound)
		r.Get("/", a.HomeHandler)
		r.Get("/about", a.AboutHandler)
		r.Get("/services", a.ServicesHandler)
		r.Get("/pricing", a.PricingHandler)
		r.Get("/contact", a.ContactHandler)
		r.Post("/contact", a.ContactSubmitHandler)
		r.Get("/quote", a.QuoteHandler)
		r.Post("/quote", a.QuoteSubmitHandler)
		r.Post("/newsletter", a.NewsletterHandler)
		r.Get("/privacy", a.LegalHandler("privacy"))
		r.Get("/terms", a.LegalHandler("terms"))
	})
	return r
}
