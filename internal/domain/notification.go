package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the in-app feed entry written for every due reminder,
// independent of email and push.
type Notification struct {
	id        uuid.UUID
	userID    UserID
	nType     NotificationType
	reference Reference
	title     string
	message   string
	data      map[string]any
	read      bool
	createdAt time.Time
}

func NewNotificationFromReminder(r *Reminder, now time.Time) *Notification {
	data := map[string]any{
		"id":   r.ID().String(),
		"type": string(r.NotificationType()),
	}

	if !r.Reference().IsZero() {
		data["reference_id"] = r.Reference().ID().String()
	}

	return &Notification{
		id:        uuid.Must(uuid.NewV7()),
		userID:    r.UserID(),
		nType:     r.NotificationType(),
		reference: r.Reference(),
		title:     r.Title(),
		message:   r.Message(),
		data:      data,
		createdAt: now,
	}
}

func ReconstituteNotification(
	id uuid.UUID,
	userID UserID,
	nType NotificationType,
	reference Reference,
	title string,
	message string,
	data map[string]any,
	read bool,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		nType:     nType,
		reference: reference,
		title:     title,
		message:   message,
		data:      data,
		read:      read,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() uuid.UUID {
	return n.id
}

func (n *Notification) UserID() UserID {
	return n.userID
}

func (n *Notification) Type() NotificationType {
	return n.nType
}

func (n *Notification) Reference() Reference {
	return n.reference
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) Data() map[string]any {
	return n.data
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}
