package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	fcmBatchLimit  = 500
	fcmConcurrency = 16
)

type FCMConfig struct {
	ProjectID       string
	CredentialsFile string
}

// FCMSender delivers to android tokens through the FCM HTTP v1 API, one
// request per token.
type FCMSender struct {
	service *fcm.Service
	parent  string
}

func NewFCMSender(ctx context.Context, cfg FCMConfig) (*FCMSender, error) {
	opts := []option.ClientOption{option.WithScopes(fcm.FirebaseMessagingScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := fcm.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM service: %w", err)
	}

	return &FCMSender{
		service: svc,
		parent:  "projects/" + cfg.ProjectID,
	}, nil
}

func (s *FCMSender) BatchLimit() int {
	return fcmBatchLimit
}

func (s *FCMSender) SendBatch(ctx context.Context, msgs []Message) ([]Outcome, error) {
	outcomes := make([]Outcome, len(msgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fcmConcurrency)

	for i, msg := range msgs {
		g.Go(func() error {
			_, err := s.service.Projects.Messages.
				Send(s.parent, &fcm.SendMessageRequest{Message: toFCMMessage(msg)}).
				Context(gctx).
				Do()

			outcomes[i] = fcmOutcome(msg.Token, err)

			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func toFCMMessage(msg Message) *fcm.Message {
	return &fcm.Message{
		Token: msg.Token,
		Notification: &fcm.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &fcm.AndroidConfig{
			Priority: "HIGH",
		},
	}
}

func fcmOutcome(token string, err error) Outcome {
	if err == nil {
		return Outcome{Token: token}
	}

	if isFCMUnregistered(err) {
		return Outcome{Token: token, Err: fmt.Errorf("%w: %v", ErrUnregistered, err), Unregistered: true}
	}

	return Outcome{Token: token, Err: err}
}

const fcmErrorUnregistered = "UNREGISTERED"

// isFCMUnregistered trusts the FcmError code in the error details. A 404
// counts only when the response carries no details at all, so a wrong
// project id does not deactivate every token.
func isFCMUnregistered(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}

	if code, ok := fcmErrorCode(gerr); ok {
		return code == fcmErrorUnregistered
	}

	if strings.Contains(gerr.Body, fcmErrorUnregistered) || strings.Contains(gerr.Message, fcmErrorUnregistered) {
		return true
	}

	return gerr.Code == http.StatusNotFound && len(gerr.Details) == 0
}

func fcmErrorCode(gerr *googleapi.Error) (string, bool) {
	for _, d := range gerr.Details {
		detail, ok := d.(map[string]any)
		if !ok {
			continue
		}

		if code, ok := detail["errorCode"].(string); ok && code != "" {
			return code, true
		}
	}

	return "", false
}
