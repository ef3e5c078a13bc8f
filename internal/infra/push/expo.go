package push

import (
	"context"
	"fmt"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

const expoBatchLimit = 100

type ExpoConfig struct {
	AccessToken string
}

type expoPublisher interface {
	PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error)
}

// ExpoSender delivers to ios tokens through the Expo push service.
type ExpoSender struct {
	client expoPublisher
}

func NewExpoSender(cfg ExpoConfig) *ExpoSender {
	return &ExpoSender{
		client: expo.NewPushClient(&expo.ClientConfig{AccessToken: cfg.AccessToken}),
	}
}

func (s *ExpoSender) BatchLimit() int {
	return expoBatchLimit
}

func (s *ExpoSender) SendBatch(ctx context.Context, msgs []Message) ([]Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(msgs))
	pending := make([]expo.PushMessage, 0, len(msgs))
	index := make([]int, 0, len(msgs))

	for i, msg := range msgs {
		token, err := expo.NewExponentPushToken(msg.Token)
		if err != nil {
			outcomes[i] = Outcome{Token: msg.Token, Err: fmt.Errorf("%w: %v", ErrUnregistered, err), Unregistered: true}

			continue
		}

		pending = append(pending, expo.PushMessage{
			To:       []expo.ExponentPushToken{token},
			Title:    msg.Title,
			Body:     msg.Body,
			Data:     msg.Data,
			Sound:    "default",
			Priority: expo.HighPriority,
		})
		index = append(index, i)
	}

	if len(pending) == 0 {
		return outcomes, nil
	}

	responses, err := s.client.PublishMultiple(pending)
	if err != nil {
		return nil, fmt.Errorf("expo publish failed: %w", err)
	}

	for j, res := range responses {
		if j >= len(index) {
			break
		}

		outcomes[index[j]] = expoOutcome(msgs[index[j]].Token, res)
	}

	return outcomes, nil
}

func expoOutcome(token string, res expo.PushResponse) Outcome {
	err := res.ValidateResponse()
	if err == nil {
		return Outcome{Token: token}
	}

	if res.Details["error"] == expo.ErrorDeviceNotRegistered {
		return Outcome{Token: token, Err: fmt.Errorf("%w: %v", ErrUnregistered, err), Unregistered: true}
	}

	return Outcome{Token: token, Err: err}
}
