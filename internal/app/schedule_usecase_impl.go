package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type scheduleUseCaseImpl struct {
	uow        domain.UnitOfWork
	reconciler reconciler
}

func NewScheduleUseCase(uow domain.UnitOfWork, clock Clock) ScheduleUseCase {
	return &scheduleUseCaseImpl{
		uow:        uow,
		reconciler: newReconciler(clock),
	}
}

func (uc *scheduleUseCaseImpl) SeedDefaults(ctx context.Context, input SeedDefaultSchedulesInput) (SchedulesOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return SchedulesOutput{}, NewValidationError("user_id", err.Error())
	}

	var seeded []*domain.ScheduleEntry

	if err := uc.uow.Do(ctx, func(repos domain.Repositories) error {
		count, err := repos.Schedules.CountDefaults(ctx, userID)
		if err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		seeded = domain.DefaultScheduleEntries(userID)

		return repos.Schedules.SaveAll(ctx, seeded)
	}); err != nil {
		slog.Error("failed to seed default schedules",
			"error", err,
			"user_id", input.UserID,
		)

		return SchedulesOutput{}, wrapStoreError(err)
	}

	if len(seeded) == 0 {
		slog.Info("default schedules already seeded (idempotency)",
			"user_id", input.UserID,
		)
	}

	return uc.ListSchedules(ctx, ListSchedulesInput{UserID: input.UserID, IncludeGlobal: true})
}

func (uc *scheduleUseCaseImpl) ListSchedules(ctx context.Context, input ListSchedulesInput) (SchedulesOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return SchedulesOutput{}, NewValidationError("user_id", err.Error())
	}

	filter := domain.ScheduleFilter{IncludeGlobal: input.IncludeGlobal}

	if input.AssignmentID != "" {
		filter.AssignmentID, err = domain.AssignmentIDFromString(input.AssignmentID)
		if err != nil {
			return SchedulesOutput{}, NewValidationError("assignment_id", err.Error())
		}
	} else {
		filter.IncludeGlobal = true
	}

	entries, err := uc.uow.Repositories().Schedules.FindByUser(ctx, userID, filter)
	if err != nil {
		slog.Error("failed to list schedules",
			"error", err,
			"user_id", input.UserID,
		)

		return SchedulesOutput{}, wrapStoreError(err)
	}

	return FromScheduleEntries(entries), nil
}

func (uc *scheduleUseCaseImpl) AddSchedule(ctx context.Context, input AddScheduleInput) (ScheduleOutput, error) {
	slog.Debug("adding schedule",
		"user_id", input.UserID,
		"assignment_id", input.AssignmentID,
		"offset", input.Offset,
		"direction", input.Direction,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ScheduleOutput{}, NewValidationError("user_id", err.Error())
	}

	var assignmentID domain.AssignmentID
	if input.AssignmentID != "" {
		assignmentID, err = domain.AssignmentIDFromString(input.AssignmentID)
		if err != nil {
			return ScheduleOutput{}, NewValidationError("assignment_id", err.Error())
		}
	}

	offset, err := parseOffsetInput(input.Offset, input.Direction)
	if err != nil {
		return ScheduleOutput{}, err
	}

	var entry *domain.ScheduleEntry

	if err := uc.uow.Do(ctx, func(repos domain.Repositories) error {
		if !assignmentID.IsZero() {
			if _, err := repos.Assignments.FindByID(ctx, userID, assignmentID); err != nil {
				return err
			}
		}

		existing, err := repos.Schedules.FindSlot(ctx, userID, assignmentID, offset)
		switch {
		case err == nil && existing.IsEnabled():
			return domain.ErrScheduleAlreadyExists
		case err == nil:
			existing.Enable()
			entry = existing

			if err := repos.Schedules.Update(ctx, entry); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrScheduleNotFound):
			entry, err = domain.NewScheduleEntry(userID, assignmentID, offset)
			if err != nil {
				return err
			}

			if err := repos.Schedules.Save(ctx, entry); err != nil {
				return err
			}
		default:
			return err
		}

		return uc.reconcileScoped(ctx, repos, entry)
	}); err != nil {
		if errors.Is(err, domain.ErrScheduleAlreadyExists) {
			return ScheduleOutput{}, ErrAlreadyExists
		}

		if !isNotFound(err) {
			slog.Error("failed to add schedule",
				"error", err,
				"user_id", input.UserID,
			)
		}

		return ScheduleOutput{}, wrapStoreError(err)
	}

	if err := uc.reconcileGlobal(ctx, entry); err != nil {
		return ScheduleOutput{}, err
	}

	slog.Info("schedule added",
		"schedule_id", entry.ID().String(),
		"offset", entry.Offset().String(),
		"global", entry.IsGlobal(),
	)

	return FromScheduleEntry(entry), nil
}

func (uc *scheduleUseCaseImpl) UpdateSchedule(ctx context.Context, input UpdateScheduleInput) (ScheduleOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return ScheduleOutput{}, NewValidationError("user_id", err.Error())
	}

	id, err := domain.ScheduleIDFromString(input.ID)
	if err != nil {
		return ScheduleOutput{}, NewValidationError("id", err.Error())
	}

	var entry *domain.ScheduleEntry

	if err := uc.uow.Do(ctx, func(repos domain.Repositories) error {
		entry, err = repos.Schedules.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if !entry.UserID().Equals(userID) {
			return ErrForbidden
		}

		if input.Offset != nil || input.Direction != nil {
			spec := entry.Offset().Spec()
			if input.Offset != nil {
				spec = *input.Offset
			}

			direction := string(entry.Offset().Direction())
			if input.Direction != nil {
				direction = *input.Direction
			}

			offset, err := parseOffsetInput(spec, direction)
			if err != nil {
				return err
			}

			if !offset.Equals(entry.Offset()) {
				if clash, err := repos.Schedules.FindSlot(ctx, userID, entry.AssignmentID(), offset); err == nil && clash.ID() != entry.ID() {
					return domain.ErrScheduleAlreadyExists
				}

				if err := entry.ChangeOffset(offset); err != nil {
					return NewValidationError("offset", err.Error())
				}
			}
		}

		if input.Enabled != nil {
			if *input.Enabled {
				entry.Enable()
			} else {
				entry.Disable()
			}
		}

		if err := repos.Schedules.Update(ctx, entry); err != nil {
			return err
		}

		return uc.reconcileScoped(ctx, repos, entry)
	}); err != nil {
		return ScheduleOutput{}, uc.mapScheduleError(err, input.ID)
	}

	if err := uc.reconcileGlobal(ctx, entry); err != nil {
		return ScheduleOutput{}, err
	}

	slog.Info("schedule updated",
		"schedule_id", input.ID,
		"enabled", entry.IsEnabled(),
		"offset", entry.Offset().String(),
	)

	return FromScheduleEntry(entry), nil
}

func (uc *scheduleUseCaseImpl) RemoveSchedule(ctx context.Context, input RemoveScheduleInput) error {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NewValidationError("user_id", err.Error())
	}

	id, err := domain.ScheduleIDFromString(input.ID)
	if err != nil {
		return NewValidationError("id", err.Error())
	}

	var entry *domain.ScheduleEntry

	if err := uc.uow.Do(ctx, func(repos domain.Repositories) error {
		entry, err = repos.Schedules.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if !entry.UserID().Equals(userID) {
			return ErrForbidden
		}

		if err := entry.CanDelete(); err != nil {
			return NewValidationError("id", err.Error())
		}

		if err := repos.Schedules.Delete(ctx, id); err != nil {
			return err
		}

		return uc.reconcileScoped(ctx, repos, entry)
	}); err != nil {
		return uc.mapScheduleError(err, input.ID)
	}

	if err := uc.reconcileGlobal(ctx, entry); err != nil {
		return err
	}

	slog.Info("schedule removed",
		"schedule_id", input.ID,
	)

	return nil
}

// reconcileScoped regenerates the single assignment an assignment-scoped
// entry affects, inside the caller's transaction.
func (uc *scheduleUseCaseImpl) reconcileScoped(ctx context.Context, repos domain.Repositories, entry *domain.ScheduleEntry) error {
	if entry.IsGlobal() {
		return nil
	}

	_, err := uc.reconciler.reconcile(ctx, repos, entry.UserID(), entry.AssignmentID())

	return err
}

func (uc *scheduleUseCaseImpl) reconcileGlobal(ctx context.Context, entry *domain.ScheduleEntry) error {
	if !entry.IsGlobal() {
		return nil
	}

	_, err := reconcileUser(ctx, uc.uow, uc.reconciler, entry.UserID())

	return err
}

func (uc *scheduleUseCaseImpl) mapScheduleError(err error, id string) error {
	switch {
	case IsValidationError(err), errors.Is(err, ErrForbidden):
		return err
	case errors.Is(err, domain.ErrScheduleAlreadyExists):
		return ErrAlreadyExists
	case isNotFound(err):
		return wrapStoreError(err)
	default:
		slog.Error("failed to change schedule",
			"error", err,
			"schedule_id", id,
		)

		return wrapStoreError(err)
	}
}

func parseOffsetInput(spec, direction string) (domain.Offset, error) {
	if direction == "" {
		direction = string(domain.DirectionBefore)
	}

	dir, err := domain.NewDirection(direction)
	if err != nil {
		return domain.Offset{}, NewValidationError("direction", err.Error())
	}

	offset, err := domain.ParseOffset(spec, dir)
	if err != nil {
		return domain.Offset{}, NewValidationError("offset", err.Error())
	}

	return offset, nil
}
