package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Runtime environments accepted by SITE_ENV.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Env is the validated process environment. Every field maps to one variable.
type Env struct {
	Environment string `env:"SITE_ENV" envDefault:"development" validate:"oneof=development test production"`
	AppURL      string `env:"SITE_APP_URL" envDefault:"http://localhost:8080" validate:"required,url"`

	EnableNewsletter    bool   `env:"SITE_ENABLE_NEWSLETTER" envDefault:"false"`
	NewsletterProvider  string `env:"SITE_NEWSLETTER_PROVIDER" validate:"omitempty,oneof=mailchimp convertkit resend"`
	EnableAnalytics     bool   `env:"SITE_ENABLE_ANALYTICS" envDefault:"false"`
	GAID                string `env:"SITE_GA_ID"`
	GAAPISecret         string `env:"SITE_GA_API_SECRET"`
	MetaPixelID         string `env:"SITE_META_PIXEL_ID"`
	EnableContactForm   bool   `env:"SITE_ENABLE_CONTACT_FORM" envDefault:"false"`
	ContactFormEndpoint string `env:"SITE_CONTACT_FORM_ENDPOINT" validate:"omitempty,url"`
	EnableAnimations    bool   `env:"SITE_ENABLE_ANIMATIONS" envDefault:"false"`
	AnimationPreset     string `env:"SITE_ANIMATION_PRESET" envDefault:"subtle" validate:"oneof=none subtle full"`
	EnableChatWidget    bool   `env:"SITE_ENABLE_CHAT_WIDGET" envDefault:"false"`
	ChatProvider        string `env:"SITE_CHAT_PROVIDER" validate:"omitempty,oneof=tawk crisp intercom"`
	ChatPropertyID      string `env:"SITE_CHAT_PROPERTY_ID"`
	EnableCookieConsent bool   `env:"SITE_ENABLE_COOKIE_CONSENT" envDefault:"false"`
	CookieConsentMode   string `env:"SITE_COOKIE_CONSENT_MODE" envDefault:"banner" validate:"oneof=banner modal"`

	Addr              string `env:"SITE_ADDR"`
	Port              string `env:"PORT" envDefault:"8080" validate:"numeric"`
	Dev               bool   `env:"SITE_DEV" envDefault:"false"`
	SessionSigningKey string `env:"SITE_SESSION_SIGNING_KEY"`
	CMSBaseURL        string `env:"SITE_CMS_BASE_URL" validate:"omitempty,url"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// ListenAddr returns SITE_ADDR when set, otherwise ":" + PORT.
func (e Env) ListenAddr() string {
	if addr := strings.TrimSpace(e.Addr); addr != "" {
		return addr
	}
	return ":" + e.Port
}

// IsProduction reports whether SITE_ENV=production.
func (e Env) IsProduction() bool { return e.Environment == EnvProduction }

// IsDevelopment reports whether SITE_ENV=development.
func (e Env) IsDevelopment() bool { return e.Environment == EnvDevelopment }

// Config bundles everything derived from the environment at process start.
type Config struct {
	Env      Env
	Site     Site
	SEO      SEO
	Features Features
}

// ValidationError is returned when one or more environment variables are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid variable names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values which take precedence over the system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load parses and validates the environment, then derives site, SEO and feature configuration.
// Precedence: .env file < process environment < explicit map.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	values, err := environmentValues(options)
	if err != nil {
		return Config{}, err
	}

	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: values}); err != nil {
		return Config{}, parseFailure(err)
	}
	e.AppURL = strings.TrimRight(strings.TrimSpace(e.AppURL), "/")
	if err := validateEnv(e); err != nil {
		return Config{}, err
	}

	site := DefaultSite(e.AppURL)
	return Config{
		Env:      e,
		Site:     site,
		SEO:      NewSEO(site),
		Features: FeaturesFromEnv(e),
	}, nil
}

func environmentValues(options loaderOptions) (map[string]string, error) {
	values := make(map[string]string)
	merge := func(source map[string]string) {
		for key, value := range source {
			values[key] = value
		}
	}

	if path := strings.TrimSpace(options.envFile); path != "" {
		dotenv, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		merge(dotenv)
	}

	if options.useSystemEnv {
		system := make(map[string]string)
		for _, entry := range os.Environ() {
			key, value, ok := strings.Cut(entry, "=")
			if !ok || strings.TrimSpace(key) == "" {
				continue
			}
			system[key] = value
		}
		merge(system)
	}

	merge(options.envMap)
	return values, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report failures using the environment variable name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name, _, _ := strings.Cut(field.Tag.Get("env"), ","); name != "" {
			return name
		}
		return field.Name
	})
	return v
}

func validateEnv(e Env) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return newValidationError(fields)
}

func parseFailure(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return fmt.Errorf("config: parse env: %w", err)
	}
	fields := make([]string, 0, len(agg.Errors))
	for _, inner := range agg.Errors {
		var pe env.ParseError
		if errors.As(inner, &pe) {
			fields = append(fields, envKeyForField(pe.Name))
			continue
		}
		fields = append(fields, inner.Error())
	}
	return newValidationError(fields)
}

func newValidationError(fields []string) *ValidationError {
	sort.Strings(fields)
	return &ValidationError{fields: fields}
}

func envKeyForField(name string) string {
	if sf, ok := reflect.TypeOf(Env{}).FieldByName(name); ok {
		if key, _, _ := strings.Cut(sf.Tag.Get("env"), ","); key != "" {
			return key
		}
	}
	return name
}
