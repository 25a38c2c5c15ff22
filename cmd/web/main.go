package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/config"
	"finitefield.org/marketing-web/internal/observability"
	"finitefield.org/marketing-web/internal/seo"
)

const meterName = "finitefield.org/marketing-web"

type serveOptions struct {
	addr         string
	templatesDir string
	dev          bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	opts := &serveOptions{}

	root := &cobra.Command{
		Use:          "web",
		Short:        "Multi-locale marketing site",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile, opts)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with local overrides (empty disables)")
	bindServeFlags(root, opts)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile, opts)
		},
	}
	bindServeFlags(serve, opts)

	sitemap := &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.WithEnvFile(envFile))
			if err != nil {
				return err
			}
			return seo.Sitemap(cfg, seo.StaticRoutes, time.Now()).WriteXML(cmd.OutOrStdout())
		},
	}

	robots := &cobra.Command{
		Use:   "robots",
		Short: "Print robots.txt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.WithEnvFile(envFile))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), seo.RobotsTxt(cfg))
			return err
		},
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Validate the environment and print the resolved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.WithEnvFile(envFile))
			if err != nil {
				return err
			}
			return printEnv(cmd, cfg)
		},
	}

	root.AddCommand(serve, sitemap, robots, envCmd)
	return root
}

func bindServeFlags(cmd *cobra.Command, o *serveOptions) {
	cmd.Flags().StringVar(&o.addr, "addr", "", "HTTP listen address (defaults to SITE_ADDR or :PORT)")
	cmd.Flags().StringVar(&o.templatesDir, "templates", "templates", "templates directory used in dev mode")
	cmd.Flags().BoolVar(&o.dev, "dev", false, "reparse templates from disk on every request")
}

func printEnv(cmd *cobra.Command, cfg config.Config) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "environment  %s\n", cfg.Env.Environment)
	fmt.Fprintf(out, "listen       %s\n", cfg.Env.ListenAddr())
	fmt.Fprintf(out, "site url     %s\n", cfg.Site.URL)
	fmt.Fprintf(out, "locales      %v (default %s)\n", cfg.Site.Locales, cfg.Site.DefaultLocale)
	keys := []config.FeatureKey{
		config.FeatureAnimations,
		config.FeatureNewsletter,
		config.FeatureAnalytics,
		config.FeatureContactForm,
		config.FeatureChatWidget,
		config.FeatureCookieConsent,
	}
	for _, k := range keys {
		fmt.Fprintf(out, "feature      %-14s %v\n", k, cfg.Features.IsEnabled(k))
	}
	return nil
}

func runServe(ctx context.Context, envFile string, o *serveOptions) error {
	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Env.LogLevel, cfg.Env.IsDevelopment())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	provider := sdkmetric.NewMeterProvider()
	otel.SetMeterProvider(provider)
	// no exporter: spans only correlate request logs through trace_id
	tracerProvider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tracerProvider)

	devMode := o.dev || cfg.Env.Dev
	app, err := newApp(cfg, logger, appOptions{
		Dev:          devMode,
		TemplatesDir: o.templatesDir,
		Meter:        provider.Meter(meterName),
	})
	if err != nil {
		logger.Error("init app", zap.Error(err))
		return err
	}

	addr := o.addr
	if addr == "" {
		addr = cfg.Env.ListenAddr()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.Bool("devMode", devMode),
			zap.String("environment", cfg.Env.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("listen", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
		return err
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.Warn("meter provider shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.Warn("tracer provider shutdown", zap.Error(err))
	}
	return nil
}
