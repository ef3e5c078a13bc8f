package app

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type reconciler struct {
	generator *domain.ReminderGenerator
	now       Clock
}

func newReconciler(clock Clock) reconciler {
	return reconciler{
		generator: domain.NewReminderGenerator(),
		now:       clock.orDefault(),
	}
}

// reconcile must run inside a unit of work: it deletes the pending AUTO
// reminders of the assignment and writes their replacements.
func (r reconciler) reconcile(
	ctx context.Context,
	repos domain.Repositories,
	userID domain.UserID,
	assignmentID domain.AssignmentID,
) (ReconcileOutput, error) {
	out := ReconcileOutput{AssignmentID: assignmentID.String()}
	ref := domain.AssignmentReference(assignmentID)

	assignment, err := repos.Assignments.FindByID(ctx, userID, assignmentID)
	if err != nil {
		return out, err
	}

	user, err := repos.Users.FindByID(ctx, userID)
	if err != nil {
		return out, err
	}

	now := r.now()

	if assignment.IsClosed() {
		disabled, err := repos.Reminders.DisableByReference(ctx, userID, ref, assignment.ClosedReason(), now)
		if err != nil {
			return out, err
		}

		out.Disabled = disabled
		out.SkipReason = assignment.ClosedReason()

		return out, nil
	}

	deleted, err := repos.Reminders.DeleteByReference(ctx, userID, ref, []domain.Origin{domain.OriginAuto})
	if err != nil {
		return out, err
	}

	out.Deleted = deleted

	if reason := r.generator.SkipReason(assignment, user.Preferences()); reason != "" {
		if reason == domain.SkipNoDueDate {
			slog.Warn("assignment has no due date, no reminders generated",
				"assignment_id", assignmentID.String(),
				"user_id", userID.String(),
			)
		}

		out.SkipReason = reason

		return out, nil
	}

	entries, err := repos.Schedules.FindApplicable(ctx, userID, assignmentID)
	if err != nil {
		return out, err
	}

	reminders := r.generator.Generate(assignment, user.Preferences(), entries, now)
	if len(reminders) == 0 {
		return out, nil
	}

	if err := repos.Reminders.SaveAll(ctx, reminders); err != nil {
		return out, err
	}

	out.Created = len(reminders)

	return out, nil
}
