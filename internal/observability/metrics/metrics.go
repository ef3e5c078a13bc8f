package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const meterName = "github.com/KasumiMercury/primind-assignment-reminder"

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

type Provider struct {
	mp *sdkmetric.MeterProvider
}

func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.mp
}

func (p *Provider) Meter() metric.Meter {
	return p.mp.Meter(meterName)
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.mp.Shutdown(ctx)
}

func newResource(cfg Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	)
}

func newNoopProvider(cfg Config) *Provider {
	// MeterProvider without any reader does not export metrics
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(newResource(cfg)),
	)

	return &Provider{mp: mp}
}

type HTTPMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	requests, err := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Number of HTTP requests served"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

func (m *HTTPMetrics) Record(ctx context.Context, method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.response.status_code", status),
	)

	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, duration.Seconds(), attrs)
}

// SweepMetrics counts reminder outcomes per sweep run.
type SweepMetrics struct {
	runs      metric.Int64Counter
	reminders metric.Int64Counter
	duration  metric.Float64Histogram
}

func NewSweepMetrics(meter metric.Meter) (*SweepMetrics, error) {
	runs, err := meter.Int64Counter("reminder.sweep.runs",
		metric.WithDescription("Number of sweep runs by result"),
	)
	if err != nil {
		return nil, err
	}

	reminders, err := meter.Int64Counter("reminder.sweep.reminders",
		metric.WithDescription("Number of reminders processed by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("reminder.sweep.duration",
		metric.WithDescription("Duration of sweep runs"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &SweepMetrics{runs: runs, reminders: reminders, duration: duration}, nil
}

type SweepResult struct {
	Skipped  bool
	Failed   bool
	Claimed  int
	Sent     int
	Disabled int
	Released int
}

func (m *SweepMetrics) Record(ctx context.Context, res SweepResult, duration time.Duration) {
	result := "ok"

	switch {
	case res.Failed:
		result = "error"
	case res.Skipped:
		result = "skipped"
	}

	m.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("result", result)))

	for outcome, n := range map[string]int{
		"claimed":  res.Claimed,
		"sent":     res.Sent,
		"disabled": res.Disabled,
		"released": res.Released,
	} {
		if n > 0 {
			m.reminders.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", outcome)))
		}
	}
}
