//go:build gcloud

package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-googlecloud/pkg/googlecloud"
	"github.com/ThreeDotsLabs/watermill/message"
)

type GCloudPublisher struct {
	publisher message.Publisher
	logger    watermill.LoggerAdapter
}

type GCloudPublisherConfig struct {
	ProjectID string
}

func NewGCloudPublisher(ctx context.Context, cfg GCloudPublisherConfig) (*GCloudPublisher, error) {
	logger := watermill.NewSlogLogger(slog.Default())

	publisher, err := googlecloud.NewPublisher(
		googlecloud.PublisherConfig{
			ProjectID: cfg.ProjectID,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Cloud publisher: %w", err)
	}

	return &GCloudPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *GCloudPublisher) PublishReminderEvent(ctx context.Context, event ReminderEvent) error {
	msg, err := newEventMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(event.Topic(), msg); err != nil {
		slog.Error("failed to publish reminder event",
			slog.String("reminder_id", event.ReminderID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("published reminder event",
		slog.String("reminder_id", event.ReminderID),
		slog.String("topic", event.Topic()),
		slog.String("message_id", msg.UUID),
	)
	return nil
}

func (p *GCloudPublisher) Close() error {
	return p.publisher.Close()
}
