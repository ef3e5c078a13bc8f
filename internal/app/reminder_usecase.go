package app

import (
	"context"
)

type ReminderUseCase interface {
	// Reconcile replaces the AUTO reminders of one assignment with a fresh
	// computation from its current state, atomically.
	Reconcile(ctx context.Context, input ReconcileInput) (ReconcileOutput, error)
	ReconcileUser(ctx context.Context, input ReconcileUserInput) (ReconcileUserOutput, error)
	DisableAssignmentReminders(ctx context.Context, input DisableAssignmentRemindersInput) (int64, error)
	PurgeAssignmentReminders(ctx context.Context, input PurgeAssignmentRemindersInput) (int64, error)
	ListAssignmentReminders(ctx context.Context, input ListAssignmentRemindersInput) (RemindersOutput, error)

	CreateCustomReminder(ctx context.Context, input CreateCustomReminderInput) (ReminderOutput, error)
	ListReminders(ctx context.Context, input ListRemindersInput) (RemindersOutput, error)
	GetReminder(ctx context.Context, input ReminderByIDInput) (ReminderOutput, error)
	DeleteReminder(ctx context.Context, input ReminderByIDInput) error
	DisableReminder(ctx context.Context, input ReminderByIDInput) (ReminderOutput, error)
	// GetReminderHistory returns every send attempt and skip recorded for
	// the reminder, oldest first.
	GetReminderHistory(ctx context.Context, input ReminderByIDInput) (SendHistoriesOutput, error)
}
