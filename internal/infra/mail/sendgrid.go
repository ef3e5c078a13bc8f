package mail

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type SendGridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendGridMailer(cfg SendGridConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	message := buildSendGridMessage(m.from, msg)

	res, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		slog.WarnContext(ctx, "sendgrid rejected message",
			slog.Int("status", res.StatusCode),
			slog.String("body", res.Body),
		)

		return fmt.Errorf("%w: status %d", ErrRejected, res.StatusCode)
	}

	return nil
}

func buildSendGridMessage(from *sgmail.Email, msg Message) *sgmail.SGMailV3 {
	to := sgmail.NewEmail(msg.ToName, msg.To)
	htmlBody := "<p>" + html.EscapeString(msg.Body) + "</p>"

	return sgmail.NewSingleEmail(from, msg.Subject, to, msg.Body, htmlBody)
}
