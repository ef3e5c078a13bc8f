package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of sending them. It is used
// when no provider key is configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "mail not sent, no provider configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
