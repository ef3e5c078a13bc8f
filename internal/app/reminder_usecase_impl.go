package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type reminderUseCaseImpl struct {
	uow        domain.UnitOfWork
	reconciler reconciler
	now        Clock
}

func NewReminderUseCase(uow domain.UnitOfWork, clock Clock) ReminderUseCase {
	return &reminderUseCaseImpl{
		uow:        uow,
		reconciler: newReconciler(clock),
		now:        clock.orDefault(),
	}
}

func (uc *reminderUseCaseImpl) Reconcile(ctx context.Context, input ReconcileInput) (ReconcileOutput, error) {
	slog.Debug("reconciling assignment reminders",
		"user_id", input.UserID,
		"assignment_id", input.AssignmentID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ReconcileOutput{}, NewValidationError("user_id", err.Error())
	}

	assignmentID, err := domain.AssignmentIDFromString(input.AssignmentID)
	if err != nil {
		return ReconcileOutput{}, NewValidationError("assignment_id", err.Error())
	}

	var out ReconcileOutput

	if err := uc.uow.Do(ctx, func(repos domain.Repositories) error {
		out, err = uc.reconciler.reconcile(ctx, repos, userID, assignmentID)

		return err
	}); err != nil {
		slog.Error("failed to reconcile assignment reminders",
			"error", err,
			"user_id", input.UserID,
			"assignment_id", input.AssignmentID,
		)

		return ReconcileOutput{}, wrapStoreError(err)
	}

	slog.Info("assignment reminders reconciled",
		"assignment_id", input.AssignmentID,
		"deleted", out.Deleted,
		"created", out.Created,
		"disabled", out.Disabled,
		"skip_reason", out.SkipReason,
	)

	return out, nil
}

func (uc *reminderUseCaseImpl) ReconcileUser(ctx context.Context, input ReconcileUserInput) (ReconcileUserOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ReconcileUserOutput{}, NewValidationError("user_id", err.Error())
	}

	return reconcileUser(ctx, uc.uow, uc.reconciler, userID)
}

// reconcileUser regenerates every assignment of the user, one transaction
// per assignment.
func reconcileUser(ctx context.Context, uow domain.UnitOfWork, r reconciler, userID domain.UserID) (ReconcileUserOutput, error) {
	ids, err := uow.Repositories().Assignments.FindIDsByUser(ctx, userID)
	if err != nil {
		slog.Error("failed to list user assignments",
			"error", err,
			"user_id", userID.String(),
		)

		return ReconcileUserOutput{}, wrapStoreError(err)
	}

	out := ReconcileUserOutput{Assignments: make([]ReconcileOutput, 0, len(ids))}

	for _, id := range ids {
		var res ReconcileOutput

		err := uow.Do(ctx, func(repos domain.Repositories) error {
			var rerr error
			res, rerr = r.reconcile(ctx, repos, userID, id)

			return rerr
		})
		if err != nil {
			if errors.Is(err, domain.ErrAssignmentNotFound) {
				slog.Info("assignment vanished during reconcile",
					"assignment_id", id.String(),
				)

				continue
			}

			slog.Error("failed to reconcile assignment reminders",
				"error", err,
				"user_id", userID.String(),
				"assignment_id", id.String(),
			)

			return out, wrapStoreError(err)
		}

		out.Assignments = append(out.Assignments, res)
	}

	slog.Info("user reminders reconciled",
		"user_id", userID.String(),
		"assignments", len(out.Assignments),
	)

	return out, nil
}

func (uc *reminderUseCaseImpl) DisableAssignmentReminders(ctx context.Context, input DisableAssignmentRemindersInput) (int64, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return 0, NewValidationError("user_id", err.Error())
	}

	assignmentID, err := domain.AssignmentIDFromString(input.AssignmentID)
	if err != nil {
		return 0, NewValidationError("assignment_id", err.Error())
	}

	reason := input.Reason
	if reason == "" {
		reason = domain.ReasonAssignmentCompleted
	}

	disabled, err := uc.uow.Repositories().Reminders.DisableByReference(
		ctx, userID, domain.AssignmentReference(assignmentID), reason, uc.now(),
	)
	if err != nil {
		slog.Error("failed to disable assignment reminders",
			"error", err,
			"assignment_id", input.AssignmentID,
		)

		return 0, wrapStoreError(err)
	}

	slog.Info("assignment reminders disabled",
		"assignment_id", input.AssignmentID,
		"reason", reason,
		"count", disabled,
	)

	return disabled, nil
}

func (uc *reminderUseCaseImpl) PurgeAssignmentReminders(ctx context.Context, input PurgeAssignmentRemindersInput) (int64, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return 0, NewValidationError("user_id", err.Error())
	}

	assignmentID, err := domain.AssignmentIDFromString(input.AssignmentID)
	if err != nil {
		return 0, NewValidationError("assignment_id", err.Error())
	}

	deleted, err := uc.uow.Repositories().Reminders.DeleteByReference(
		ctx, userID, domain.AssignmentReference(assignmentID),
		[]domain.Origin{domain.OriginAuto, domain.OriginCustom},
	)
	if err != nil {
		slog.Error("failed to purge assignment reminders",
			"error", err,
			"assignment_id", input.AssignmentID,
		)

		return 0, wrapStoreError(err)
	}

	slog.Info("assignment reminders purged",
		"assignment_id", input.AssignmentID,
		"count", deleted,
	)

	return deleted, nil
}

func (uc *reminderUseCaseImpl) ListAssignmentReminders(ctx context.Context, input ListAssignmentRemindersInput) (RemindersOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return RemindersOutput{}, NewValidationError("user_id", err.Error())
	}

	assignmentID, err := domain.AssignmentIDFromString(input.AssignmentID)
	if err != nil {
		return RemindersOutput{}, NewValidationError("assignment_id", err.Error())
	}

	filter := domain.ReminderFilter{Reference: domain.AssignmentReference(assignmentID)}

	if input.Status != "" {
		status, err := domain.NewStatus(input.Status)
		if err != nil {
			return RemindersOutput{}, NewValidationError("status", err.Error())
		}

		filter.Status = status
	}

	reminders, err := uc.uow.Repositories().Reminders.FindByUser(ctx, userID, filter)
	if err != nil {
		slog.Error("failed to list assignment reminders",
			"error", err,
			"assignment_id", input.AssignmentID,
		)

		return RemindersOutput{}, wrapStoreError(err)
	}

	return FromReminders(reminders), nil
}

func (uc *reminderUseCaseImpl) CreateCustomReminder(ctx context.Context, input CreateCustomReminderInput) (ReminderOutput, error) {
	slog.Debug("creating custom reminder",
		"user_id", input.UserID,
		"reminder_at", input.ReminderAt,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ReminderOutput{}, NewValidationError("user_id", err.Error())
	}

	ref, err := domain.NewReference(input.ReferenceKind, input.ReferenceID)
	if err != nil {
		return ReminderOutput{}, NewValidationError("reference", err.Error())
	}

	repos := uc.uow.Repositories()

	if assignmentID, ok := ref.AssignmentID(); ok {
		if _, err := repos.Assignments.FindByID(ctx, userID, assignmentID); err != nil {
			if !isNotFound(err) {
				slog.Error("failed to look up referenced assignment",
					"error", err,
					"assignment_id", assignmentID.String(),
				)
			}

			return ReminderOutput{}, wrapStoreError(err)
		}
	}

	reminder, err := domain.NewCustomReminder(userID, ref, input.ReminderAt, input.Title, input.Message, uc.now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyTitle):
			return ReminderOutput{}, NewValidationError("title", err.Error())
		default:
			return ReminderOutput{}, NewValidationError("reminder_at", err.Error())
		}
	}

	if err := repos.Reminders.Save(ctx, reminder); err != nil {
		slog.Error("failed to save custom reminder",
			"error", err,
			"reminder_id", reminder.ID().String(),
		)

		return ReminderOutput{}, wrapStoreError(err)
	}

	slog.Info("custom reminder created",
		"reminder_id", reminder.ID().String(),
		"user_id", input.UserID,
	)

	return FromReminder(reminder), nil
}

func (uc *reminderUseCaseImpl) ListReminders(ctx context.Context, input ListRemindersInput) (RemindersOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return RemindersOutput{}, NewValidationError("user_id", err.Error())
	}

	var filter domain.ReminderFilter

	if input.Origin != "" {
		origin, err := domain.NewOrigin(input.Origin)
		if err != nil {
			return RemindersOutput{}, NewValidationError("origin", err.Error())
		}

		filter.Origin = origin
	}

	if input.Status != "" {
		status, err := domain.NewStatus(input.Status)
		if err != nil {
			return RemindersOutput{}, NewValidationError("status", err.Error())
		}

		filter.Status = status
	}

	reminders, err := uc.uow.Repositories().Reminders.FindByUser(ctx, userID, filter)
	if err != nil {
		slog.Error("failed to list reminders",
			"error", err,
			"user_id", input.UserID,
		)

		return RemindersOutput{}, wrapStoreError(err)
	}

	return FromReminders(reminders), nil
}

func (uc *reminderUseCaseImpl) GetReminder(ctx context.Context, input ReminderByIDInput) (ReminderOutput, error) {
	reminder, err := uc.findOwned(ctx, input)
	if err != nil {
		return ReminderOutput{}, err
	}

	return FromReminder(reminder), nil
}

func (uc *reminderUseCaseImpl) DeleteReminder(ctx context.Context, input ReminderByIDInput) error {
	slog.Debug("deleting reminder",
		"reminder_id", input.ID,
	)

	reminder, err := uc.findOwned(ctx, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Info("reminder not found for deletion (idempotency)",
				"reminder_id", input.ID,
			)

			return nil
		}

		return err
	}

	if reminder.Origin() == domain.OriginAuto {
		return NewValidationError("id", "auto reminders follow the schedule catalog; disable them instead")
	}

	if err := uc.uow.Repositories().Reminders.Delete(ctx, reminder.ID()); err != nil && !errors.Is(err, domain.ErrReminderNotFound) {
		slog.Error("failed to delete reminder",
			"error", err,
			"reminder_id", input.ID,
		)

		return wrapStoreError(err)
	}

	slog.Debug("reminder deleted",
		"reminder_id", input.ID,
	)

	return nil
}

func (uc *reminderUseCaseImpl) DisableReminder(ctx context.Context, input ReminderByIDInput) (ReminderOutput, error) {
	reminder, err := uc.findOwned(ctx, input)
	if err != nil {
		return ReminderOutput{}, err
	}

	if reminder.Status() == domain.StatusDisabled {
		slog.Info("reminder already disabled (idempotency)",
			"reminder_id", input.ID,
		)

		return FromReminder(reminder), nil
	}

	if err := reminder.Disable(domain.ReasonDisabledByUser, uc.now()); err != nil {
		return ReminderOutput{}, NewValidationError("status", err.Error())
	}

	if err := uc.uow.Repositories().Reminders.Update(ctx, reminder); err != nil {
		slog.Error("failed to disable reminder",
			"error", err,
			"reminder_id", input.ID,
		)

		return ReminderOutput{}, wrapStoreError(err)
	}

	return FromReminder(reminder), nil
}

func (uc *reminderUseCaseImpl) GetReminderHistory(ctx context.Context, input ReminderByIDInput) (SendHistoriesOutput, error) {
	reminder, err := uc.findOwned(ctx, input)
	if err != nil {
		return SendHistoriesOutput{}, err
	}

	rows, err := uc.uow.Repositories().History.FindByReminder(ctx, reminder.ID())
	if err != nil {
		slog.Error("failed to load send history",
			"error", err,
			"reminder_id", input.ID,
		)

		return SendHistoriesOutput{}, wrapStoreError(err)
	}

	return FromSendHistories(rows), nil
}

func (uc *reminderUseCaseImpl) findOwned(ctx context.Context, input ReminderByIDInput) (*domain.Reminder, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return nil, NewValidationError("user_id", err.Error())
	}

	id, err := domain.ReminderIDFromString(input.ID)
	if err != nil {
		return nil, NewValidationError("id", err.Error())
	}

	reminder, err := uc.uow.Repositories().Reminders.FindByID(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			slog.Error("failed to load reminder",
				"error", err,
				"reminder_id", input.ID,
			)
		}

		return nil, wrapStoreError(err)
	}

	if !reminder.UserID().Equals(userID) {
		return nil, ErrForbidden
	}

	return reminder, nil
}
