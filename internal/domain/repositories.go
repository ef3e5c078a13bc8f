package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReminderFilter struct {
	Origin    Origin
	Status    Status
	Reference Reference
}

type ReminderRepository interface {
	Save(ctx context.Context, reminder *Reminder) error
	SaveAll(ctx context.Context, reminders []*Reminder) error
	Update(ctx context.Context, reminder *Reminder) error
	FindByID(ctx context.Context, id ReminderID) (*Reminder, error)
	FindByUser(ctx context.Context, userID UserID, filter ReminderFilter) ([]*Reminder, error)
	Delete(ctx context.Context, id ReminderID) error
	// DeleteByReference removes PENDING reminders of the given origins.
	DeleteByReference(ctx context.Context, userID UserID, ref Reference, origins []Origin) (int64, error)
	// DisableByReference moves PENDING and CLAIMED AUTO reminders to DISABLED.
	DisableByReference(ctx context.Context, userID UserID, ref Reference, reason string, now time.Time) (int64, error)
	// ClaimDue leases up to limit due reminders. Rows locked by a concurrent
	// claim are skipped; CLAIMED rows whose lease expired are reclaimed.
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*Reminder, error)
	MarkSent(ctx context.Context, ids []ReminderID, now time.Time) (int64, error)
	MarkDisabled(ctx context.Context, reasons map[ReminderID]string, now time.Time) (int64, error)
	Release(ctx context.Context, ids []ReminderID, now time.Time) (int64, error)
	// MarkNotified stamps notified_at on reminders that do not have it yet.
	MarkNotified(ctx context.Context, ids []ReminderID, now time.Time) (int64, error)
}

type ScheduleFilter struct {
	AssignmentID  AssignmentID
	IncludeGlobal bool
}

type ScheduleRepository interface {
	Save(ctx context.Context, entry *ScheduleEntry) error
	SaveAll(ctx context.Context, entries []*ScheduleEntry) error
	Update(ctx context.Context, entry *ScheduleEntry) error
	Delete(ctx context.Context, id ScheduleID) error
	FindByID(ctx context.Context, id ScheduleID) (*ScheduleEntry, error)
	FindByUser(ctx context.Context, userID UserID, filter ScheduleFilter) ([]*ScheduleEntry, error)
	// FindApplicable returns the assignment's own entries plus every global entry.
	FindApplicable(ctx context.Context, userID UserID, assignmentID AssignmentID) ([]*ScheduleEntry, error)
	FindSlot(ctx context.Context, userID UserID, assignmentID AssignmentID, offset Offset) (*ScheduleEntry, error)
	CountDefaults(ctx context.Context, userID UserID) (int64, error)
}

type SendHistoryRepository interface {
	CreateMany(ctx context.Context, rows []*SendHistory) error
	FindByReminder(ctx context.Context, reminderID ReminderID) ([]*SendHistory, error)
}

type NotificationRepository interface {
	CreateMany(ctx context.Context, notifications []*Notification) error
	FindByUser(ctx context.Context, userID UserID, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, userID UserID) (int64, error)
	// MarkRead flags the user's notifications with the given ids as read.
	// Ids belonging to other users are ignored.
	MarkRead(ctx context.Context, userID UserID, ids []uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID UserID) (int64, error)
}

type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *DeviceToken) error
	FindByUser(ctx context.Context, userID UserID) (DeviceTokens, error)
	FindActiveByUsers(ctx context.Context, userIDs []UserID) (map[UserID]DeviceTokens, error)
	Deactivate(ctx context.Context, tokens []string) (int64, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id UserID) (*UserProfile, error)
	FindByIDs(ctx context.Context, ids []UserID) (map[UserID]*UserProfile, error)
	UpdatePreferences(ctx context.Context, user *UserProfile) error
}

type AssignmentRepository interface {
	FindByID(ctx context.Context, userID UserID, id AssignmentID) (*Assignment, error)
	FindIDsByUser(ctx context.Context, userID UserID) ([]AssignmentID, error)
}

// Repositories is the set of stores bound to one transaction.
type Repositories struct {
	Reminders     ReminderRepository
	Schedules     ScheduleRepository
	History       SendHistoryRepository
	Notifications NotificationRepository
	Devices       DeviceTokenRepository
	Users         UserRepository
	Assignments   AssignmentRepository
}

type UnitOfWork interface {
	Repositories() Repositories
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
