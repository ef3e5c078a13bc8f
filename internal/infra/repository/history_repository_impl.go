package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type sendHistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewSendHistoryRepository(db *gorm.DB) domain.SendHistoryRepository {
	return &sendHistoryRepositoryImpl{
		db: db,
	}
}

func (r *sendHistoryRepositoryImpl) CreateMany(ctx context.Context, rows []*domain.SendHistory) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]*SendHistoryModel, 0, len(rows))
	for _, h := range rows {
		models = append(models, FromSendHistory(h))
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, createBatchSize).Error; err != nil {
		slog.Error("failed to save send history",
			"count", len(models),
			"error", err,
		)

		return err
	}

	return nil
}

func (r *sendHistoryRepositoryImpl) FindByReminder(ctx context.Context, reminderID domain.ReminderID) ([]*domain.SendHistory, error) {
	var models []SendHistoryModel

	err := r.db.WithContext(ctx).
		Where("reminder_id = ?", reminderID.String()).
		Order("created_at ASC").Order("channel ASC").
		Find(&models).Error
	if err != nil {
		slog.Error("failed to find send history",
			"reminder_id", reminderID.String(),
			"error", err,
		)

		return nil, err
	}

	out := make([]*domain.SendHistory, 0, len(models))

	for _, m := range models {
		h, err := m.ToEntity()
		if err != nil {
			return nil, err
		}

		out = append(out, h)
	}

	return out, nil
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepositoryImpl{
		db: db,
	}
}

func (r *notificationRepositoryImpl) CreateMany(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	models := make([]*NotificationModel, 0, len(notifications))
	for _, n := range notifications {
		models = append(models, FromNotification(n))
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, createBatchSize).Error; err != nil {
		slog.Error("failed to save notifications",
			"count", len(models),
			"error", err,
		)

		return err
	}

	return nil
}

func (r *notificationRepositoryImpl) FindByUser(ctx context.Context, userID domain.UserID, limit int) ([]*domain.Notification, error) {
	var models []NotificationModel

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&models).Error; err != nil {
		slog.Error("failed to find notifications",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, err
	}

	out := make([]*domain.Notification, 0, len(models))

	for _, m := range models {
		n, err := m.ToEntity()
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	return out, nil
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, userID domain.UserID) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("user_id = ?", userID.String()).
		Where("is_read = ?", false).
		Count(&count).Error
	if err != nil {
		slog.Error("failed to count unread notifications",
			"user_id", userID.String(),
			"error", err,
		)

		return 0, err
	}

	return count, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, userID domain.UserID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	return r.markRead(ctx, userID, r.db.Where("id IN ?", raw))
}

func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, userID domain.UserID) (int64, error) {
	return r.markRead(ctx, userID, nil)
}

func (r *notificationRepositoryImpl) markRead(ctx context.Context, userID domain.UserID, scope *gorm.DB) (int64, error) {
	q := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("user_id = ?", userID.String()).
		Where("is_read = ?", false)
	if scope != nil {
		q = q.Where(scope)
	}

	result := q.Update("is_read", true)
	if result.Error != nil {
		slog.Error("failed to mark notifications read",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return 0, result.Error
	}

	return result.RowsAffected, nil
}
