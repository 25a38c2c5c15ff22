package middleware

import "context"

type (
	requestIDKey struct{}
	fragmentKey  struct{}
	sessionKey   struct{}
	localeKey    struct{}
	noteKey      struct{}
)

// requestNote collects values that inner middleware resolve so the request
// logger, which wraps them, can report them.
type requestNote struct {
	locale string
	htmx   bool
}

func withNote(ctx context.Context) (context.Context, *requestNote) {
	n := &requestNote{}
	return context.WithValue(ctx, noteKey{}, n), n
}

func noteFrom(ctx context.Context) *requestNote {
	if n, ok := ctx.Value(noteKey{}).(*requestNote); ok {
		return n
	}
	return &requestNote{}
}

// localeInfo is what LocalePrefix resolved for the request.
type localeInfo struct {
	lang string
	// path is the route below the locale segment, "/" for the locale root.
	path string
}

// WithRequestID stores the chi request id for error bodies and logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// WithHTMX records whether the request expects a fragment swap.
func WithHTMX(ctx context.Context, fragment bool) context.Context {
	noteFrom(ctx).htmx = fragment
	return context.WithValue(ctx, fragmentKey{}, fragment)
}

// IsHTMX reports whether the request expects a fragment swap.
func IsHTMX(ctx context.Context) bool {
	fragment, _ := ctx.Value(fragmentKey{}).(bool)
	return fragment
}

// WithLocale stores the active locale and the locale-independent path.
func WithLocale(ctx context.Context, locale, path string) context.Context {
	noteFrom(ctx).locale = locale
	return context.WithValue(ctx, localeKey{}, localeInfo{lang: locale, path: path})
}

// LocaleFromContext returns the active locale, or "" outside locale routes.
func LocaleFromContext(ctx context.Context) string {
	info, _ := ctx.Value(localeKey{}).(localeInfo)
	return info.lang
}

// PathFromContext returns the request path without its locale prefix.
func PathFromContext(ctx context.Context) string {
	info, _ := ctx.Value(localeKey{}).(localeInfo)
	if info.path == "" {
		return "/"
	}
	return info.path
}
