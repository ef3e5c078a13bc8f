//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/config"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/logging"
)

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	if cfg.PubSub.NatsURL == "" {
		slog.Warn("NATS_URL not set, event publishing disabled")
		return nil, nil
	}

	publisher, err := pubsub.NewNATSPublisher(ctx, pubsub.NATSPublisherConfig{
		URL: cfg.PubSub.NatsURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher initialized", "url", cfg.PubSub.NatsURL)
	return publisher, nil
}

func initObservability(ctx context.Context, level slog.Level) (*observability.Resources, error) {
	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    "assignment-reminder",
			Version: Version,
		},
		Environment:   env,
		LogLevel:      level,
		SamplingRate:  1.0,
		DefaultModule: logging.ModuleReminder,
	})
}
