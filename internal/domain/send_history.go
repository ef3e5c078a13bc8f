package domain

import (
	"time"

	"github.com/google/uuid"
)

const ReasonDelivered = "delivered"

// SendHistory is one append-only audit row: a skipped send with its reason,
// or a transport attempt with its outcome.
type SendHistory struct {
	id         uuid.UUID
	reminderID ReminderID
	channel    Channel
	canBeSent  bool
	reason     string
	payload    map[string]any
	createdAt  time.Time
}

func NewSkippedSend(reminderID ReminderID, channel Channel, reason string, payload map[string]any, now time.Time) *SendHistory {
	return &SendHistory{
		id:         uuid.Must(uuid.NewV7()),
		reminderID: reminderID,
		channel:    channel,
		canBeSent:  false,
		reason:     reason,
		payload:    payload,
		createdAt:  now,
	}
}

// NewAttemptedSend records a transport call. A nil sendErr means the
// transport accepted the message.
func NewAttemptedSend(reminderID ReminderID, channel Channel, sendErr error, payload map[string]any, now time.Time) *SendHistory {
	reason := ReasonDelivered
	if sendErr != nil {
		reason = sendErr.Error()
	}

	return &SendHistory{
		id:         uuid.Must(uuid.NewV7()),
		reminderID: reminderID,
		channel:    channel,
		canBeSent:  true,
		reason:     reason,
		payload:    payload,
		createdAt:  now,
	}
}

func ReconstituteSendHistory(
	id uuid.UUID,
	reminderID ReminderID,
	channel Channel,
	canBeSent bool,
	reason string,
	payload map[string]any,
	createdAt time.Time,
) *SendHistory {
	return &SendHistory{
		id:         id,
		reminderID: reminderID,
		channel:    channel,
		canBeSent:  canBeSent,
		reason:     reason,
		payload:    payload,
		createdAt:  createdAt,
	}
}

func (h *SendHistory) ID() uuid.UUID {
	return h.id
}

func (h *SendHistory) ReminderID() ReminderID {
	return h.reminderID
}

func (h *SendHistory) Channel() Channel {
	return h.channel
}

func (h *SendHistory) CanBeSent() bool {
	return h.canBeSent
}

func (h *SendHistory) Reason() string {
	return h.reason
}

func (h *SendHistory) Payload() map[string]any {
	return h.payload
}

func (h *SendHistory) CreatedAt() time.Time {
	return h.createdAt
}
