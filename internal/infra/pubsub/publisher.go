package pubsub

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/tracing"
	pjson "github.com/KasumiMercury/primind-assignment-reminder/internal/proto"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=pubsub

const (
	TopicReminderSent     = "reminder.sent"
	TopicReminderDisabled = "reminder.disabled"
)

// ReminderEvent announces that a reminder reached a terminal state in a sweep.
type ReminderEvent struct {
	ReminderID    string
	UserID        string
	Status        string
	Reason        string
	ReferenceKind string
	ReferenceID   string
	OccurredAt    time.Time
}

func (e ReminderEvent) Topic() string {
	if e.Status == "SENT" {
		return TopicReminderSent
	}

	return TopicReminderDisabled
}

func (e ReminderEvent) ToProto() (*structpb.Struct, error) {
	occurredAt := timestamppb.New(e.OccurredAt)
	if err := occurredAt.CheckValid(); err != nil {
		return nil, fmt.Errorf("invalid occurred_at: %w", err)
	}

	return structpb.NewStruct(map[string]any{
		"reminder_id":    e.ReminderID,
		"user_id":        e.UserID,
		"status":         e.Status,
		"reason":         e.Reason,
		"reference_kind": e.ReferenceKind,
		"reference_id":   e.ReferenceID,
		"occurred_at":    occurredAt.AsTime().Format(time.RFC3339Nano),
	})
}

type Publisher interface {
	PublishReminderEvent(ctx context.Context, event ReminderEvent) error
	io.Closer
}

func newEventMessage(ctx context.Context, event ReminderEvent) (*message.Message, error) {
	body, err := event.ToProto()
	if err != nil {
		return nil, fmt.Errorf("failed to build event: %w", err)
	}

	payload, err := pjson.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Topic())
	msg.Metadata.Set("reminder_id", event.ReminderID)
	msg.Metadata.Set("user_id", event.UserID)
	tracing.InjectToMap(ctx, msg.Metadata)

	return msg, nil
}
