// Package analytics forwards named events to the configured tracking sinks.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/observability"
)

// Event is one tracked interaction.
type Event struct {
	Name      string
	Params    map[string]any
	ClientID  string
	Timestamp time.Time
}

// Sink receives forwarded events.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// ErrInvalidEventName is returned for names outside the GA4 naming rules.
var ErrInvalidEventName = errors.New("analytics: invalid event name")

var eventNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,39}$`)

// ValidEventName reports whether name is a valid event name: a letter followed
// by up to 39 letters, digits or underscores.
func ValidEventName(name string) bool {
	return eventNamePattern.MatchString(name)
}

// Tracker dispatches events. A disabled tracker drops every event and, in
// development, logs it at debug level.
type Tracker struct {
	enabled     bool
	development bool
	sinks       []Sink
	now         func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSink adds a sink. Nil sinks are ignored.
func WithSink(s Sink) Option {
	return func(t *Tracker) {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
}

// WithDevelopment enables debug logging of dropped events.
func WithDevelopment(dev bool) Option {
	return func(t *Tracker) { t.development = dev }
}

// WithClock overrides the event timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(t *Tracker) {
		if fn != nil {
			t.now = fn
		}
	}
}

// NewTracker returns a tracker. Sinks are only consulted when enabled is true.
func NewTracker(enabled bool, opts ...Option) *Tracker {
	t := &Tracker{enabled: enabled, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enabled reports whether events are forwarded.
func (t *Tracker) Enabled() bool { return t != nil && t.enabled }

// Sinks returns the names of the configured sinks.
func (t *Tracker) Sinks() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.sinks))
	for _, s := range t.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Track forwards name and params to every sink. Sink failures are logged and
// joined into the returned error; they never stop delivery to other sinks.
func (t *Tracker) Track(ctx context.Context, name string, params map[string]any) error {
	return t.TrackEvent(ctx, Event{Name: name, Params: params})
}

// TrackEvent is Track with a client id.
func (t *Tracker) TrackEvent(ctx context.Context, ev Event) error {
	logger := observability.FromContext(ctx)
	if !t.Enabled() {
		if t != nil && t.development {
			logger.Debug("analytics disabled, event dropped", zap.String("event", ev.Name), zap.Any("params", ev.Params))
		}
		return nil
	}
	if !ValidEventName(ev.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidEventName, ev.Name)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = t.now()
	}
	var errs []error
	for _, s := range t.sinks {
		if err := s.Send(ctx, ev); err != nil {
			logger.Warn("analytics sink failed", zap.String("sink", s.Name()), zap.String("event", ev.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// TrackPageView records a page view.
func (t *Tracker) TrackPageView(ctx context.Context, path, title string) error {
	return t.Track(ctx, "page_view", map[string]any{"page_path": path, "page_title": title})
}

// TrackFormSubmission records a form submit and its outcome.
func (t *Tracker) TrackFormSubmission(ctx context.Context, form string, success bool) error {
	return t.Track(ctx, "form_submit", map[string]any{"form_name": form, "success": success})
}

// TrackButtonClick records a button click.
func (t *Tracker) TrackButtonClick(ctx context.Context, name, location string) error {
	return t.Track(ctx, "button_click", map[string]any{"button_name": name, "location": location})
}

// TrackCtaClick records a call-to-action click.
func (t *Tracker) TrackCtaClick(ctx context.Context, name, destination string) error {
	return t.Track(ctx, "cta_click", map[string]any{"cta_name": name, "destination": destination})
}

// Item is a purchased line item.
type Item struct {
	ID       string  `json:"item_id"`
	Name     string  `json:"item_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// TrackPurchase records a completed purchase.
func (t *Tracker) TrackPurchase(ctx context.Context, transactionID string, value float64, currency string, items []Item) error {
	return t.Track(ctx, "purchase", map[string]any{
		"transaction_id": transactionID,
		"value":          value,
		"currency":       currency,
		"items":          items,
	})
}
