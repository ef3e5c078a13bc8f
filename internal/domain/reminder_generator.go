package domain

import (
	"fmt"
	"time"
)

const dueDateLayout = "Mon Jan 2 2006"

const (
	SkipNoDueDate          = "no due date"
	SkipReminderFlagOff    = "assignment reminder flag off"
	SkipPreferenceDisabled = "assignment_reminder preference off"
)

type ReminderGenerator struct{}

func NewReminderGenerator() *ReminderGenerator {
	return &ReminderGenerator{}
}

// SkipReason explains why an assignment yields no reminders, or returns ""
// when generation should proceed.
func (g *ReminderGenerator) SkipReason(a *Assignment, prefs NotificationPreferences) string {
	if _, ok := a.DueDate(); !ok {
		return SkipNoDueDate
	}

	if !a.ReminderEnabled() {
		return SkipReminderFlagOff
	}

	if !prefs.AssignmentReminder {
		return SkipPreferenceDisabled
	}

	if a.IsClosed() {
		return a.ClosedReason()
	}

	return ""
}

// Generate computes one reminder per enabled entry applicable to the
// assignment. Instants at or before now come back DISABLED.
func (g *ReminderGenerator) Generate(
	a *Assignment,
	prefs NotificationPreferences,
	entries []*ScheduleEntry,
	now time.Time,
) []*Reminder {
	if g.SkipReason(a, prefs) != "" {
		return nil
	}

	due, _ := a.DueDate()
	ref := AssignmentReference(a.ID())
	title := fmt.Sprintf("Reminder for %s", a.Title())
	message := fmt.Sprintf("You have an assignment due on %s", due.UTC().Format(dueDateLayout))

	reminders := make([]*Reminder, 0, len(entries))

	for _, e := range entries {
		if !e.IsEnabled() || !e.AppliesTo(a.ID()) {
			continue
		}

		reminders = append(reminders, NewAutoReminder(
			a.UserID(),
			ref,
			e.ID(),
			e.Offset().Apply(due),
			title,
			message,
			now,
		))
	}

	return reminders
}
