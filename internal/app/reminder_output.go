package app

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type ReminderOutput struct {
	ID               string
	UserID           string
	ReferenceKind    string
	ReferenceID      string
	ReminderAt       time.Time
	Title            string
	Message          string
	NotificationType string
	Origin           string
	ScheduleID       string
	Status           string
	DisabledReason   string
	DisabledAt       *time.Time
	SentAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RemindersOutput struct {
	Reminders []ReminderOutput
	Count     int32
}

type ReconcileOutput struct {
	AssignmentID string
	Deleted      int64
	Created      int
	Disabled     int64
	SkipReason   string
}

type ReconcileUserOutput struct {
	Assignments []ReconcileOutput
}

func FromReminder(r *domain.Reminder) ReminderOutput {
	out := ReminderOutput{
		ID:               r.ID().String(),
		UserID:           r.UserID().String(),
		ReminderAt:       r.ReminderAt(),
		Title:            r.Title(),
		Message:          r.Message(),
		NotificationType: string(r.NotificationType()),
		Origin:           string(r.Origin()),
		Status:           string(r.Status()),
		DisabledReason:   r.DisabledReason(),
		DisabledAt:       r.DisabledAt(),
		SentAt:           r.SentAt(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}

	if !r.Reference().IsZero() {
		out.ReferenceKind = string(r.Reference().Kind())
		out.ReferenceID = r.Reference().ID().String()
	}

	if !r.ScheduleID().IsZero() {
		out.ScheduleID = r.ScheduleID().String()
	}

	return out
}

func FromReminders(reminders []*domain.Reminder) RemindersOutput {
	outputs := make([]ReminderOutput, 0, len(reminders))
	for _, r := range reminders {
		outputs = append(outputs, FromReminder(r))
	}

	return RemindersOutput{
		Reminders: outputs,
		Count:     int32(len(outputs)), // #nosec G115
	}
}
