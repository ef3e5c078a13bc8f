package app

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

// SweepOutcome is everything one sweep learned about its claimed reminders.
type SweepOutcome struct {
	Due          []*domain.Reminder
	Channels     []domain.Channel
	Skips        []ChannelSkip
	Deliveries   []DeliveryResult
	Unregistered []string
}

type FinalizeResult struct {
	Sent          []domain.ReminderID
	Disabled      map[domain.ReminderID]string
	Released      []domain.ReminderID
	HistoryRows   int
	Notifications int
	Deactivated   int64
}

type OutcomeRecorder struct {
	uow domain.UnitOfWork
	now Clock
}

func NewOutcomeRecorder(uow domain.UnitOfWork, clock Clock) *OutcomeRecorder {
	return &OutcomeRecorder{
		uow: uow,
		now: clock.orDefault(),
	}
}

// Decide classifies every due reminder:
//   - accepted by at least one transport: SENT
//   - no channel enabled at all: SENT, the in-app notification is the delivery
//   - skipped on every enabled channel: DISABLED with the first channel's reason
//   - anything else: released for the next sweep
func (r *OutcomeRecorder) Decide(outcome SweepOutcome) FinalizeResult {
	accepted := make(map[domain.ReminderID]bool)
	for _, d := range outcome.Deliveries {
		if d.Accepted() {
			accepted[d.ReminderID] = true
		}
	}

	skips := make(map[domain.ReminderID]map[domain.Channel]string)
	for _, s := range outcome.Skips {
		if skips[s.ReminderID] == nil {
			skips[s.ReminderID] = make(map[domain.Channel]string)
		}

		skips[s.ReminderID][s.Channel] = s.Reason
	}

	res := FinalizeResult{Disabled: make(map[domain.ReminderID]string)}

	for _, reminder := range outcome.Due {
		id := reminder.ID()

		if accepted[id] || len(outcome.Channels) == 0 {
			res.Sent = append(res.Sent, id)

			continue
		}

		if reason, ok := skippedEverywhere(skips[id], outcome.Channels); ok {
			res.Disabled[id] = reason

			continue
		}

		res.Released = append(res.Released, id)
	}

	return res
}

func skippedEverywhere(skips map[domain.Channel]string, channels []domain.Channel) (string, bool) {
	for _, ch := range channels {
		if _, ok := skips[ch]; !ok {
			return "", false
		}
	}

	return skips[channels[0]], true
}

// Finalize applies the decision, the audit trail, the in-app notifications
// and token deactivation in one transaction.
func (r *OutcomeRecorder) Finalize(ctx context.Context, outcome SweepOutcome) (FinalizeResult, error) {
	res := r.Decide(outcome)
	now := r.now()

	history := make([]*domain.SendHistory, 0, len(outcome.Skips)+len(outcome.Deliveries))
	for _, s := range outcome.Skips {
		history = append(history, domain.NewSkippedSend(s.ReminderID, s.Channel, s.Reason, s.Payload, now))
	}

	for _, d := range outcome.Deliveries {
		history = append(history, domain.NewAttemptedSend(d.ReminderID, d.Channel, d.Err, d.Payload, now))
	}

	// A due reminder gets its in-app notification on the first sweep that
	// sees it, whatever the transports did. Retries after a release do not
	// write it again.
	notifications := make([]*domain.Notification, 0, len(outcome.Due))
	notified := make([]domain.ReminderID, 0, len(outcome.Due))

	for _, reminder := range outcome.Due {
		if reminder.NotifiedAt() != nil {
			continue
		}

		notifications = append(notifications, domain.NewNotificationFromReminder(reminder, now))
		notified = append(notified, reminder.ID())
	}

	err := r.uow.Do(ctx, func(repos domain.Repositories) error {
		if len(res.Sent) > 0 {
			if _, err := repos.Reminders.MarkSent(ctx, res.Sent, now); err != nil {
				return err
			}
		}

		if len(res.Disabled) > 0 {
			if _, err := repos.Reminders.MarkDisabled(ctx, res.Disabled, now); err != nil {
				return err
			}
		}

		if len(res.Released) > 0 {
			if _, err := repos.Reminders.Release(ctx, res.Released, now); err != nil {
				return err
			}
		}

		if len(history) > 0 {
			if err := repos.History.CreateMany(ctx, history); err != nil {
				return err
			}
		}

		if len(notifications) > 0 {
			if err := repos.Notifications.CreateMany(ctx, notifications); err != nil {
				return err
			}

			if _, err := repos.Reminders.MarkNotified(ctx, notified, now); err != nil {
				return err
			}
		}

		if len(outcome.Unregistered) > 0 {
			n, err := repos.Devices.Deactivate(ctx, outcome.Unregistered)
			if err != nil {
				return err
			}

			res.Deactivated = n
		}

		return nil
	})
	if err != nil {
		slog.Error("failed to finalize sweep outcome",
			"error", err,
			"due", len(outcome.Due),
		)

		return FinalizeResult{}, wrapStoreError(err)
	}

	res.HistoryRows = len(history)
	res.Notifications = len(notifications)

	return res, nil
}

func containsID(ids []domain.ReminderID, id domain.ReminderID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}
