package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/tracing"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	LogLevel      slog.Level
	GCPProjectID  string
	SamplingRate  float64
	DefaultModule logging.Module
}

type Resources struct {
	Logger         *slog.Logger
	TracerProvider *tracing.Provider
	MeterProvider  *metrics.Provider
	HTTPMetrics    *metrics.HTTPMetrics
	SweepMetrics   *metrics.SweepMetrics
}

// Init installs the process-wide logger, tracer provider, meter provider and
// W3C propagator.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	logger := logging.NewLogger(os.Stdout, logging.Config{
		Service:      cfg.ServiceInfo,
		Environment:  cfg.Environment,
		Level:        cfg.LogLevel,
		GCPProjectID: cfg.GCPProjectID,
	})
	slog.SetDefault(logger)

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
		SamplingRate:   cfg.SamplingRate,
	})
	if err != nil {
		return nil, err
	}

	mp, err := metrics.NewProvider(ctx, metrics.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
	})
	if err != nil {
		_ = tp.Shutdown(ctx)

		return nil, err
	}

	otel.SetTracerProvider(tp.TracerProvider())
	otel.SetMeterProvider(mp.MeterProvider())
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	httpMetrics, err := metrics.NewHTTPMetrics(mp.Meter())
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	sweepMetrics, err := metrics.NewSweepMetrics(mp.Meter())
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	slog.InfoContext(logging.WithModule(ctx, cfg.DefaultModule), "observability initialized",
		slog.String("environment", string(cfg.Environment)),
	)

	return &Resources{
		Logger:         logger,
		TracerProvider: tp,
		MeterProvider:  mp,
		HTTPMetrics:    httpMetrics,
		SweepMetrics:   sweepMetrics,
	}, nil
}

// Shutdown flushes spans and metrics.
func (r *Resources) Shutdown(ctx context.Context) error {
	return errors.Join(
		r.TracerProvider.Shutdown(ctx),
		r.MeterProvider.Shutdown(ctx),
	)
}
