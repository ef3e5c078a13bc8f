package app

import (
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

// DeliveryResult is the outcome of one transport attempt for one reminder
// on one channel.
type DeliveryResult struct {
	ReminderID domain.ReminderID
	Channel    domain.Channel
	Payload    map[string]any
	Err        error
}

func (r DeliveryResult) Accepted() bool {
	return r.Err == nil
}

// ChannelSkip records a reminder the preference filter kept off a channel.
type ChannelSkip struct {
	ReminderID domain.ReminderID
	Channel    domain.Channel
	Reason     string
	Payload    map[string]any
}

func reminderData(r *domain.Reminder) map[string]string {
	data := map[string]string{
		"id":   r.ID().String(),
		"type": string(r.NotificationType()),
	}

	if !r.Reference().IsZero() {
		data["reference_id"] = r.Reference().ID().String()
	}

	return data
}

func emailSubject(r *domain.Reminder) string {
	return "Reminder for " + r.Title()
}

func emailPayload(r *domain.Reminder, to string) map[string]any {
	return map[string]any{
		"to":      to,
		"subject": emailSubject(r),
		"body":    r.Message(),
	}
}

func pushPayload(r *domain.Reminder, tokens int) map[string]any {
	data := make(map[string]any)
	for k, v := range reminderData(r) {
		data[k] = v
	}

	return map[string]any{
		"title":  r.Title(),
		"body":   r.Message(),
		"data":   data,
		"tokens": tokens,
	}
}
