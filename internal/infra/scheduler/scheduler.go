package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/metrics"
)

const tracerName = "github.com/KasumiMercury/primind-assignment-reminder/internal/infra/scheduler"

type Config struct {
	// Schedule is a cron expression or descriptor such as "@every 1m".
	Schedule string
	// Timeout bounds a single run. Zero means no bound.
	Timeout time.Duration
}

// Scheduler triggers the reminder sweep on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sweep   app.SweepUseCase
	metrics *metrics.SweepMetrics
	timeout time.Duration
}

// New registers the sweep job. sweepMetrics may be nil.
func New(sweep app.SweepUseCase, cfg Config, sweepMetrics *metrics.SweepMetrics) (*Scheduler, error) {
	logger := slogAdapter{}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		sweep:   sweep,
		metrics: sweepMetrics,
		timeout: cfg.Timeout,
	}

	if _, err := s.cron.AddFunc(cfg.Schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cfg.Schedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()

	slog.Info("sweep scheduler started", slog.Int("entries", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for a running sweep until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		slog.Info("sweep scheduler stopped")

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce executes a single sweep. Failures are logged and counted; the next
// tick retries.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx = logging.WithModule(ctx, logging.ModuleSweep)
	ctx = logging.WithRequestID(ctx, logging.ValidateAndExtractRequestID(""))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "reminder.sweep")
	defer span.End()

	start := time.Now()

	out, err := s.sweep.Sweep(ctx)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.Record(ctx, metrics.SweepResult{
			Skipped:  out.Skipped,
			Failed:   err != nil,
			Claimed:  out.Claimed,
			Sent:     out.Sent,
			Disabled: out.Disabled,
			Released: out.Released,
		}, duration)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		slog.ErrorContext(ctx, "sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)

		return
	}

	span.SetAttributes(
		attribute.Bool("sweep.skipped", out.Skipped),
		attribute.Int("sweep.claimed", out.Claimed),
		attribute.Int("sweep.sent", out.Sent),
		attribute.Int("sweep.disabled", out.Disabled),
		attribute.Int("sweep.released", out.Released),
	)

	if out.Skipped {
		slog.DebugContext(ctx, "sweep skipped, previous run still active")

		return
	}

	slog.DebugContext(ctx, "scheduled sweep run completed",
		slog.Int("claimed", out.Claimed),
		slog.Duration("duration", duration),
	)
}

// slogAdapter satisfies cron.Logger.
type slogAdapter struct{}

func (slogAdapter) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
