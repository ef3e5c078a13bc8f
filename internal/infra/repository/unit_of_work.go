package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type unitOfWorkImpl struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return &unitOfWorkImpl{
		db: db,
	}
}

func newRepositories(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Reminders:     NewReminderRepository(db),
		Schedules:     NewScheduleRepository(db),
		History:       NewSendHistoryRepository(db),
		Notifications: NewNotificationRepository(db),
		Devices:       NewDeviceTokenRepository(db),
		Users:         NewUserRepository(db),
		Assignments:   NewAssignmentRepository(db),
	}
}

func (u *unitOfWorkImpl) Repositories() domain.Repositories {
	return newRepositories(u.db)
}

func (u *unitOfWorkImpl) Do(ctx context.Context, fn func(repos domain.Repositories) error) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		slog.Error("failed to begin transaction",
			"error", tx.Error,
		)

		return tx.Error
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			slog.Error("failed to rollback transaction",
				"error", rbErr,
				"original_error", err,
			)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		slog.Error("failed to commit transaction",
			"error", err,
		)

		return err
	}

	return nil
}
