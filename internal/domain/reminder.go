package domain

import (
	"strings"
	"time"
)

type Reminder struct {
	id               ReminderID
	userID           UserID
	reference        Reference
	reminderAt       time.Time
	title            string
	message          string
	notificationType NotificationType
	origin           Origin
	scheduleID       ScheduleID
	status           Status
	disabledReason   string
	disabledAt       *time.Time
	claimedUntil     *time.Time
	sentAt           *time.Time
	notifiedAt       *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewAutoReminder builds a reminder derived from a schedule entry. An instant
// at or before now is born DISABLED so no sweep ever picks it up.
func NewAutoReminder(
	userID UserID,
	reference Reference,
	scheduleID ScheduleID,
	reminderAt time.Time,
	title string,
	message string,
	now time.Time,
) *Reminder {
	r := &Reminder{
		id:               NewReminderID(),
		userID:           userID,
		reference:        reference,
		reminderAt:       reminderAt,
		title:            title,
		message:          message,
		notificationType: NotificationTypeAssignment,
		origin:           OriginAuto,
		scheduleID:       scheduleID,
		status:           StatusPending,
		createdAt:        now,
		updatedAt:        now,
	}

	if !reminderAt.After(now) {
		r.status = StatusDisabled
		r.disabledReason = ReasonDueDatePassed
		r.disabledAt = &now
	}

	return r
}

func NewCustomReminder(
	userID UserID,
	reference Reference,
	reminderAt time.Time,
	title string,
	message string,
	now time.Time,
) (*Reminder, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	if !reminderAt.After(now) {
		return nil, ErrPastReminderTime
	}

	return &Reminder{
		id:               NewReminderID(),
		userID:           userID,
		reference:        reference,
		reminderAt:       reminderAt,
		title:            title,
		message:          message,
		notificationType: NotificationTypeOther,
		origin:           OriginCustom,
		status:           StatusPending,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstituteReminder(
	id ReminderID,
	userID UserID,
	reference Reference,
	reminderAt time.Time,
	title string,
	message string,
	notificationType NotificationType,
	origin Origin,
	scheduleID ScheduleID,
	status Status,
	disabledReason string,
	disabledAt *time.Time,
	claimedUntil *time.Time,
	sentAt *time.Time,
	notifiedAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Reminder {
	return &Reminder{
		id:               id,
		userID:           userID,
		reference:        reference,
		reminderAt:       reminderAt,
		title:            title,
		message:          message,
		notificationType: notificationType,
		origin:           origin,
		scheduleID:       scheduleID,
		status:           status,
		disabledReason:   disabledReason,
		disabledAt:       disabledAt,
		claimedUntil:     claimedUntil,
		sentAt:           sentAt,
		notifiedAt:       notifiedAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Claim takes a lease on a due reminder. A CLAIMED reminder whose lease
// has run out can be claimed again.
func (r *Reminder) Claim(now time.Time, lease time.Duration) error {
	if r.status.IsTerminal() {
		return ErrReminderTerminal
	}

	if r.status == StatusClaimed && r.claimedUntil != nil && r.claimedUntil.After(now) {
		return ErrLeaseActive
	}

	until := now.Add(lease)
	r.status = StatusClaimed
	r.claimedUntil = &until
	r.updatedAt = now

	return nil
}

func (r *Reminder) MarkSent(now time.Time) error {
	if r.status != StatusClaimed {
		return ErrReminderNotClaimed
	}

	r.status = StatusSent
	r.sentAt = &now
	r.claimedUntil = nil
	r.updatedAt = now

	return nil
}

func (r *Reminder) Disable(reason string, now time.Time) error {
	if r.status.IsTerminal() {
		return ErrReminderTerminal
	}

	r.status = StatusDisabled
	r.disabledReason = reason
	r.disabledAt = &now
	r.claimedUntil = nil
	r.updatedAt = now

	return nil
}

// Release hands a claimed reminder back to PENDING for the next sweep.
func (r *Reminder) Release(now time.Time) error {
	if r.status != StatusClaimed {
		return ErrReminderNotClaimed
	}

	r.status = StatusPending
	r.claimedUntil = nil
	r.updatedAt = now

	return nil
}

// MarkNotified records that the in-app notification was written. It is set
// once, independent of the delivery outcome.
func (r *Reminder) MarkNotified(now time.Time) bool {
	if r.notifiedAt != nil {
		return false
	}

	r.notifiedAt = &now

	return true
}

func (r *Reminder) IsDue(now time.Time) bool {
	return !r.reminderAt.After(now)
}

func (r *Reminder) ID() ReminderID {
	return r.id
}

func (r *Reminder) UserID() UserID {
	return r.userID
}

func (r *Reminder) Reference() Reference {
	return r.reference
}

func (r *Reminder) ReminderAt() time.Time {
	return r.reminderAt
}

func (r *Reminder) Title() string {
	return r.title
}

func (r *Reminder) Message() string {
	return r.message
}

func (r *Reminder) NotificationType() NotificationType {
	return r.notificationType
}

func (r *Reminder) Origin() Origin {
	return r.origin
}

func (r *Reminder) ScheduleID() ScheduleID {
	return r.scheduleID
}

func (r *Reminder) Status() Status {
	return r.status
}

func (r *Reminder) DisabledReason() string {
	return r.disabledReason
}

func (r *Reminder) DisabledAt() *time.Time {
	return r.disabledAt
}

func (r *Reminder) ClaimedUntil() *time.Time {
	return r.claimedUntil
}

func (r *Reminder) SentAt() *time.Time {
	return r.sentAt
}

func (r *Reminder) NotifiedAt() *time.Time {
	return r.notifiedAt
}

func (r *Reminder) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Reminder) UpdatedAt() time.Time {
	return r.updatedAt
}
