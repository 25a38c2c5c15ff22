package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const measurementProtocolURL = "https://www.google-analytics.com/mp/collect"

// MeasurementProtocolSink sends events to GA4 through the Measurement Protocol.
type MeasurementProtocolSink struct {
	endpoint      string
	measurementID string
	apiSecret     string
	http          *http.Client
}

// NewMeasurementProtocolSink returns nil when either id or secret is empty.
func NewMeasurementProtocolSink(measurementID, apiSecret string, client *http.Client) *MeasurementProtocolSink {
	measurementID = strings.TrimSpace(measurementID)
	apiSecret = strings.TrimSpace(apiSecret)
	if measurementID == "" || apiSecret == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &MeasurementProtocolSink{
		endpoint:      measurementProtocolURL,
		measurementID: measurementID,
		apiSecret:     apiSecret,
		http:          client,
	}
}

// WithEndpoint points the sink at a different collector, e.g. the GA4 debug endpoint.
func (s *MeasurementProtocolSink) WithEndpoint(endpoint string) *MeasurementProtocolSink {
	s.endpoint = endpoint
	return s
}

func (s *MeasurementProtocolSink) Name() string { return "ga4" }

type mpPayload struct {
	ClientID        string    `json:"client_id"`
	TimestampMicros int64     `json:"timestamp_micros,omitempty"`
	Events          []mpEvent `json:"events"`
}

type mpEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

func (s *MeasurementProtocolSink) Send(ctx context.Context, ev Event) error {
	clientID := ev.ClientID
	if clientID == "" {
		clientID = "server"
	}
	payload := mpPayload{
		ClientID: clientID,
		Events:   []mpEvent{{Name: ev.Name, Params: ev.Params}},
	}
	if !ev.Timestamp.IsZero() {
		payload.TimestampMicros = ev.Timestamp.UnixMicro()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	q := url.Values{}
	q.Set("measurement_id", s.measurementID)
	q.Set("api_secret", s.apiSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("analytics: measurement protocol status %d", resp.StatusCode)
	}
	return nil
}

// MeterSink counts events per name on an OpenTelemetry counter.
type MeterSink struct {
	events metric.Int64Counter
}

// NewMeterSink registers the site.analytics.events counter on meter.
func NewMeterSink(meter metric.Meter) (*MeterSink, error) {
	counter, err := meter.Int64Counter(
		"site.analytics.events",
		metric.WithDescription("Count of analytics events by name"),
	)
	if err != nil {
		return nil, fmt.Errorf("analytics: register counter: %w", err)
	}
	return &MeterSink{events: counter}, nil
}

func (s *MeterSink) Name() string { return "otel" }

func (s *MeterSink) Send(ctx context.Context, ev Event) error {
	s.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event", ev.Name)))
	return nil
}

// LogSink writes events to a zap logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, ev Event) error {
	s.logger.Info("analytics event", zap.String("event", ev.Name), zap.Any("params", ev.Params))
	return nil
}
