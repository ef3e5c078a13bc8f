package app

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type NotificationOutput struct {
	ID            string
	UserID        string
	Type          string
	ReferenceKind string
	ReferenceID   string
	Title         string
	Message       string
	Data          map[string]any
	Read          bool
	CreatedAt     time.Time
}

type NotificationsOutput struct {
	Notifications []NotificationOutput
	Count         int32
}

type UnreadCountOutput struct {
	UserID string
	Unread int64
}

type SendHistoryOutput struct {
	ID         string
	ReminderID string
	Channel    string
	CanBeSent  bool
	Reason     string
	Payload    map[string]any
	CreatedAt  time.Time
}

type SendHistoriesOutput struct {
	History []SendHistoryOutput
	Count   int32
}

func FromNotification(n *domain.Notification) NotificationOutput {
	out := NotificationOutput{
		ID:        n.ID().String(),
		UserID:    n.UserID().String(),
		Type:      string(n.Type()),
		Title:     n.Title(),
		Message:   n.Message(),
		Data:      n.Data(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}

	if !n.Reference().IsZero() {
		out.ReferenceKind = string(n.Reference().Kind())
		out.ReferenceID = n.Reference().ID().String()
	}

	return out
}

func FromNotifications(notifications []*domain.Notification) NotificationsOutput {
	outputs := make([]NotificationOutput, 0, len(notifications))
	for _, n := range notifications {
		outputs = append(outputs, FromNotification(n))
	}

	return NotificationsOutput{
		Notifications: outputs,
		Count:         int32(len(outputs)), // #nosec G115
	}
}

func FromSendHistories(rows []*domain.SendHistory) SendHistoriesOutput {
	outputs := make([]SendHistoryOutput, 0, len(rows))
	for _, h := range rows {
		outputs = append(outputs, SendHistoryOutput{
			ID:         h.ID().String(),
			ReminderID: h.ReminderID().String(),
			Channel:    string(h.Channel()),
			CanBeSent:  h.CanBeSent(),
			Reason:     h.Reason(),
			Payload:    h.Payload(),
			CreatedAt:  h.CreatedAt(),
		})
	}

	return SendHistoriesOutput{
		History: outputs,
		Count:   int32(len(outputs)), // #nosec G115
	}
}
