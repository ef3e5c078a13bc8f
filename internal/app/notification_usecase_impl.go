package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type notificationUseCaseImpl struct {
	uow domain.UnitOfWork
}

func NewNotificationUseCase(uow domain.UnitOfWork) NotificationUseCase {
	return &notificationUseCaseImpl{
		uow: uow,
	}
}

func (uc *notificationUseCaseImpl) ListNotifications(ctx context.Context, input ListNotificationsInput) (NotificationsOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NotificationsOutput{}, NewValidationError("user_id", err.Error())
	}

	limit := input.Limit
	switch {
	case limit < 0 || limit > maxNotificationLimit:
		return NotificationsOutput{}, NewValidationError("limit", fmt.Sprintf("limit must be between 1 and %d", maxNotificationLimit))
	case limit == 0:
		limit = defaultNotificationLimit
	}

	notifications, err := uc.uow.Repositories().Notifications.FindByUser(ctx, userID, limit)
	if err != nil {
		slog.Error("failed to list notifications",
			"error", err,
			"user_id", input.UserID,
		)

		return NotificationsOutput{}, wrapStoreError(err)
	}

	return FromNotifications(notifications), nil
}

func (uc *notificationUseCaseImpl) CountUnread(ctx context.Context, input UserInput) (UnreadCountOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return UnreadCountOutput{}, NewValidationError("user_id", err.Error())
	}

	n, err := uc.uow.Repositories().Notifications.CountUnread(ctx, userID)
	if err != nil {
		return UnreadCountOutput{}, wrapStoreError(err)
	}

	return UnreadCountOutput{
		UserID: userID.String(),
		Unread: n,
	}, nil
}

func (uc *notificationUseCaseImpl) MarkRead(ctx context.Context, input NotificationByIDInput) (int64, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return 0, NewValidationError("user_id", err.Error())
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return 0, NewValidationError("id", "invalid notification id")
	}

	n, err := uc.uow.Repositories().Notifications.MarkRead(ctx, userID, []uuid.UUID{id})
	if err != nil {
		slog.Error("failed to mark notification read",
			"error", err,
			"user_id", input.UserID,
			"notification_id", input.ID,
		)

		return 0, wrapStoreError(err)
	}

	return n, nil
}

func (uc *notificationUseCaseImpl) MarkAllRead(ctx context.Context, input UserInput) (int64, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return 0, NewValidationError("user_id", err.Error())
	}

	n, err := uc.uow.Repositories().Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		slog.Error("failed to mark notifications read",
			"error", err,
			"user_id", input.UserID,
		)

		return 0, wrapStoreError(err)
	}

	slog.Debug("notifications marked read",
		"user_id", input.UserID,
		"count", n,
	)

	return n, nil
}
