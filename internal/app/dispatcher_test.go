package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/mail"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/push"
)

func newTestReminder(t *testing.T, userID domain.UserID) *domain.Reminder {
	t.Helper()

	r, err := domain.NewCustomReminder(userID, domain.Reference{}, sweepAt.Add(time.Hour), "Read chapter 4", "Pages 80-120", sweepAt)
	require.NoError(t, err)

	return r
}

func newTokens(t *testing.T, userID domain.UserID, platform domain.Platform, names ...string) domain.DeviceTokens {
	t.Helper()

	tokens := make(domain.DeviceTokens, 0, len(names))

	for _, name := range names {
		tok, err := domain.NewDeviceToken(userID, name, platform, "", "")
		require.NoError(t, err)

		tokens = append(tokens, tok)
	}

	return tokens
}

func TestEmailDispatcherIsolatesFailures(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{name: "sequential", workers: 1},
		{name: "bounded pool", workers: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mailer := mail.NewMockMailer(ctrl)
			userID := newUserID(t)

			good := domain.ReconstituteUserProfile(userID, "a@example.com", "A", domain.DefaultNotificationPreferences(), sweepAt)
			bounced := domain.ReconstituteUserProfile(userID, "bounce@example.com", "B", domain.DefaultNotificationPreferences(), sweepAt)

			jobs := make([]app.EmailJob, 5)
			for i := range jobs {
				jobs[i] = app.EmailJob{Reminder: newTestReminder(t, userID), Recipient: good}
			}

			jobs[2].Recipient = bounced

			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, msg mail.Message) error {
					assert.Equal(t, "Reminder for Read chapter 4", msg.Subject)
					assert.Equal(t, "Pages 80-120", msg.Body)

					if msg.To == "bounce@example.com" {
						return mail.ErrRejected
					}

					return nil
				}).Times(5)

			results := app.NewEmailDispatcher(mailer, tt.workers).Dispatch(context.Background(), jobs)

			require.Len(t, results, 5)

			for i, res := range results {
				assert.Equal(t, jobs[i].Reminder.ID(), res.ReminderID)
				assert.Equal(t, domain.ChannelEmail, res.Channel)
				assert.Equal(t, jobs[i].Recipient.Email(), res.Payload["to"])

				if i == 2 {
					assert.ErrorIs(t, res.Err, mail.ErrRejected)
				} else {
					assert.True(t, res.Accepted())
				}
			}
		})
	}
}

func TestPushDispatcherChunksPerPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	android := push.NewMockSender(ctrl)

	userID := newUserID(t)
	reminder := newTestReminder(t, userID)
	tokens := newTokens(t, userID, domain.PlatformAndroid, "A1", "A2", "A3", "A4", "A5")

	android.EXPECT().BatchLimit().Return(2).AnyTimes()

	var sizes []int

	gomock.InOrder(
		android.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs []push.Message) ([]push.Outcome, error) {
				sizes = append(sizes, len(msgs))

				return nil, errors.New("fcm unavailable")
			}),
		android.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs []push.Message) ([]push.Outcome, error) {
				sizes = append(sizes, len(msgs))

				return []push.Outcome{{Token: msgs[0].Token}, {Token: msgs[1].Token}}, nil
			}),
		android.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs []push.Message) ([]push.Outcome, error) {
				sizes = append(sizes, len(msgs))

				return []push.Outcome{{Token: msgs[0].Token, Err: push.ErrUnregistered, Unregistered: true}}, nil
			}),
	)

	report := app.NewPushDispatcher(map[domain.Platform]push.Sender{domain.PlatformAndroid: android}).
		Dispatch(context.Background(), []app.PushJob{{Reminder: reminder, Tokens: tokens}})

	assert.Equal(t, []int{2, 2, 1}, sizes)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Accepted())
	assert.Equal(t, domain.ChannelPush, report.Results[0].Channel)
	assert.Equal(t, []string{"A5"}, report.Unregistered)
}

func TestPushDispatcherRoutesByPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	android := push.NewMockSender(ctrl)
	ios := push.NewMockSender(ctrl)

	userID := newUserID(t)
	reminder := newTestReminder(t, userID)

	tokens := append(newTokens(t, userID, domain.PlatformAndroid, "A1"), newTokens(t, userID, domain.PlatformIOS, "I1")...)
	tokens = append(tokens, newTokens(t, userID, domain.PlatformWeb, "W1")...)

	android.EXPECT().BatchLimit().Return(500).AnyTimes()
	ios.EXPECT().BatchLimit().Return(100).AnyTimes()

	android.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs []push.Message) ([]push.Outcome, error) {
			if assert.Len(t, msgs, 1) {
				assert.Equal(t, "A1", msgs[0].Token)
				assert.Equal(t, reminder.ID().String(), msgs[0].Data["id"])
			}

			return []push.Outcome{{Token: "A1", Err: errors.New("quota exceeded")}}, nil
		})

	ios.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs []push.Message) ([]push.Outcome, error) {
			if assert.Len(t, msgs, 1) {
				assert.Equal(t, "I1", msgs[0].Token)
			}

			return []push.Outcome{{Token: "I1", Err: errors.New("expo throttled")}}, nil
		})

	report := app.NewPushDispatcher(map[domain.Platform]push.Sender{
		domain.PlatformAndroid: android,
		domain.PlatformIOS:     ios,
	}).Dispatch(context.Background(), []app.PushJob{{Reminder: reminder, Tokens: tokens}})

	require.Len(t, report.Results, 1)
	require.Error(t, report.Results[0].Err)
	assert.Contains(t, report.Results[0].Err.Error(), "push failed for 2 token(s)")
	assert.Empty(t, report.Unregistered)
	assert.Equal(t, 2, report.Results[0].Payload["tokens"])
}

func TestPushDispatcherWithoutTransport(t *testing.T) {
	userID := newUserID(t)
	reminder := newTestReminder(t, userID)

	report := app.NewPushDispatcher(nil).Dispatch(context.Background(), []app.PushJob{{
		Reminder: reminder,
		Tokens:   newTokens(t, userID, domain.PlatformIOS, "I1"),
	}})

	require.Len(t, report.Results, 1)
	assert.ErrorIs(t, report.Results[0].Err, app.ErrNoPushTransport)
}

func TestOutcomeRecorderDecide(t *testing.T) {
	userID := newUserID(t)

	accepted := newTestReminder(t, userID)
	skipped := newTestReminder(t, userID)
	partial := newTestReminder(t, userID)
	failed := newTestReminder(t, userID)

	both := []domain.Channel{domain.ChannelEmail, domain.ChannelPush}

	outcome := app.SweepOutcome{
		Due:      []*domain.Reminder{accepted, skipped, partial, failed},
		Channels: both,
		Skips: []app.ChannelSkip{
			{ReminderID: accepted.ID(), Channel: domain.ChannelPush, Reason: domain.ReasonNoDeviceTokens},
			{ReminderID: skipped.ID(), Channel: domain.ChannelPush, Reason: domain.ReasonPushDisabled},
			{ReminderID: skipped.ID(), Channel: domain.ChannelEmail, Reason: domain.ReasonEmailDisabled},
			{ReminderID: partial.ID(), Channel: domain.ChannelEmail, Reason: domain.ReasonEmailDisabled},
		},
		Deliveries: []app.DeliveryResult{
			{ReminderID: accepted.ID(), Channel: domain.ChannelEmail},
			{ReminderID: partial.ID(), Channel: domain.ChannelPush, Err: fmt.Errorf("push failed for 1 token(s): %w", push.ErrUnregistered)},
			{ReminderID: failed.ID(), Channel: domain.ChannelEmail, Err: mail.ErrRejected},
			{ReminderID: failed.ID(), Channel: domain.ChannelPush, Err: errors.New("timeout")},
		},
	}

	res := app.NewOutcomeRecorder(nil, fixedClock(sweepAt)).Decide(outcome)

	assert.Equal(t, []domain.ReminderID{accepted.ID()}, res.Sent)
	assert.Equal(t, map[domain.ReminderID]string{skipped.ID(): domain.ReasonEmailDisabled}, res.Disabled)
	assert.ElementsMatch(t, []domain.ReminderID{partial.ID(), failed.ID()}, res.Released)
}
