package analytics

import (
	"net/http"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/config"
)

// Deps are the collaborators FromFeature wires into sinks.
type Deps struct {
	Meter       metric.Meter
	Logger      *zap.Logger
	HTTPClient  *http.Client
	Development bool
}

// FromFeature builds the tracker for the analytics feature flag: the GA4 sink
// when id and API secret are set, the counter sink when a meter is given and
// the log sink in development.
func FromFeature(f config.AnalyticsFeature, deps Deps) (*Tracker, error) {
	opts := []Option{WithDevelopment(deps.Development)}
	if mp := NewMeasurementProtocolSink(f.GAID, f.GAAPISecret, deps.HTTPClient); mp != nil {
		opts = append(opts, WithSink(mp))
	}
	if deps.Meter != nil {
		ms, err := NewMeterSink(deps.Meter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSink(ms))
	}
	if deps.Development {
		opts = append(opts, WithSink(NewLogSink(deps.Logger)))
	}
	return NewTracker(f.Enabled, opts...), nil
}

// ClientConfig drives the browser snippets in the base layout.
type ClientConfig struct {
	GAID        string
	MetaPixelID string
	Enabled     bool
}

// Client derives the snippet configuration from the feature flag.
func Client(f config.AnalyticsFeature) ClientConfig {
	return ClientConfig{GAID: f.GAID, MetaPixelID: f.MetaPixelID, Enabled: f.Enabled}
}

// ShowGA reports whether the gtag loader should render.
func (c ClientConfig) ShowGA() bool { return c.Enabled && c.GAID != "" }

// ShowPixel reports whether the Meta Pixel loader should render.
func (c ClientConfig) ShowPixel() bool { return c.Enabled && c.MetaPixelID != "" }
