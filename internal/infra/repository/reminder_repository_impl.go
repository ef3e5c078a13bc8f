package repository

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

const createBatchSize = 100

// claimDueSQL leases due rows in one statement. SKIP LOCKED keeps
// concurrent sweeps from claiming the same reminder.
const claimDueSQL = `
UPDATE reminders
SET status = @claimed, claimed_until = @until, updated_at = @now
WHERE id IN (
	SELECT id FROM reminders
	WHERE reminder_at <= @now
	  AND (status = @pending OR (status = @claimed AND claimed_until <= @now))
	ORDER BY reminder_at
	LIMIT @limit
	FOR UPDATE SKIP LOCKED
)
RETURNING *`

type reminderRepositoryImpl struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) domain.ReminderRepository {
	return &reminderRepositoryImpl{
		db: db,
	}
}

func (r *reminderRepositoryImpl) Save(ctx context.Context, reminder *domain.Reminder) error {
	slog.Debug("saving reminder to database",
		"reminder_id", reminder.ID().String(),
	)

	if err := r.db.WithContext(ctx).Create(FromReminder(reminder)).Error; err != nil {
		slog.Error("failed to save reminder to database",
			"reminder_id", reminder.ID().String(),
			"error", err,
		)

		return err
	}

	return nil
}

func (r *reminderRepositoryImpl) SaveAll(ctx context.Context, reminders []*domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	models := make([]*ReminderModel, 0, len(reminders))
	for _, reminder := range reminders {
		models = append(models, FromReminder(reminder))
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, createBatchSize).Error; err != nil {
		slog.Error("failed to save reminders to database",
			"count", len(models),
			"error", err,
		)

		return err
	}

	slog.Debug("reminders saved to database",
		"count", len(models),
	)

	return nil
}

func (r *reminderRepositoryImpl) Update(ctx context.Context, reminder *domain.Reminder) error {
	slog.Debug("updating reminder in database",
		"reminder_id", reminder.ID().String(),
	)

	m := FromReminder(reminder)

	result := r.db.WithContext(ctx).Model(&ReminderModel{}).Where("id = ?", m.ID).Select("*").Updates(m)
	if result.Error != nil {
		slog.Error("failed to update reminder in database",
			"reminder_id", m.ID,
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}

func (r *reminderRepositoryImpl) FindByID(ctx context.Context, id domain.ReminderID) (*domain.Reminder, error) {
	var m ReminderModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Debug("reminder not found",
				"reminder_id", id.String(),
			)

			return nil, domain.ErrReminderNotFound
		}

		slog.Error("failed to find reminder by ID",
			"reminder_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *reminderRepositoryImpl) FindByUser(ctx context.Context, userID domain.UserID, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID.String())

	if filter.Origin != "" {
		q = q.Where("origin = ?", string(filter.Origin))
	}

	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	if !filter.Reference.IsZero() {
		q = r.whereReference(q, filter.Reference)
	}

	var models []ReminderModel

	if err := q.Order("reminder_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		slog.Error("failed to find reminders by user",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, err
	}

	return toReminders(models)
}

func (r *reminderRepositoryImpl) Delete(ctx context.Context, id domain.ReminderID) error {
	slog.Debug("deleting reminder from database",
		"reminder_id", id.String(),
	)

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&ReminderModel{})
	if result.Error != nil {
		slog.Error("failed to delete reminder from database",
			"reminder_id", id.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}

// DeleteByReference also drops AUTO rows that were born DISABLED because
// their instant had passed. They were never dispatched, and regeneration
// recreates them.
func (r *reminderRepositoryImpl) DeleteByReference(
	ctx context.Context,
	userID domain.UserID,
	ref domain.Reference,
	origins []domain.Origin,
) (int64, error) {
	if len(origins) == 0 {
		return 0, nil
	}

	names := make([]string, len(origins))
	for i, o := range origins {
		names[i] = string(o)
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", userID.String())
	q = r.whereReference(q, ref).
		Where("origin IN ?", names).
		Where(
			r.db.Where("status = ?", string(domain.StatusPending)).
				Or("origin = ? AND status = ? AND disabled_reason = ?",
					string(domain.OriginAuto), string(domain.StatusDisabled), domain.ReasonDueDatePassed),
		)

	result := q.Delete(&ReminderModel{})
	if result.Error != nil {
		slog.Error("failed to delete reminders by reference",
			"reference", ref.String(),
			"error", result.Error,
		)

		return 0, result.Error
	}

	slog.Debug("reminders deleted by reference",
		"reference", ref.String(),
		"count", result.RowsAffected,
	)

	return result.RowsAffected, nil
}

func (r *reminderRepositoryImpl) DisableByReference(
	ctx context.Context,
	userID domain.UserID,
	ref domain.Reference,
	reason string,
	now time.Time,
) (int64, error) {
	q := r.db.WithContext(ctx).Model(&ReminderModel{}).Where("user_id = ?", userID.String())
	q = r.whereReference(q, ref).
		Where("origin = ?", string(domain.OriginAuto)).
		Where("status IN ?", []string{string(domain.StatusPending), string(domain.StatusClaimed)})

	result := q.Updates(map[string]any{
		"status":          string(domain.StatusDisabled),
		"disabled_reason": reason,
		"disabled_at":     now,
		"claimed_until":   nil,
		"updated_at":      now,
	})
	if result.Error != nil {
		slog.Error("failed to disable reminders by reference",
			"reference", ref.String(),
			"error", result.Error,
		)

		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *reminderRepositoryImpl) ClaimDue(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*domain.Reminder, error) {
	var models []ReminderModel

	err := r.db.WithContext(ctx).Raw(claimDueSQL, map[string]any{
		"claimed": string(domain.StatusClaimed),
		"pending": string(domain.StatusPending),
		"until":   now.Add(lease),
		"now":     now,
		"limit":   limit,
	}).Scan(&models).Error
	if err != nil {
		slog.Error("failed to claim due reminders",
			"limit", limit,
			"error", err,
		)

		return nil, err
	}

	slices.SortFunc(models, func(a, b ReminderModel) int {
		return a.ReminderAt.Compare(b.ReminderAt)
	})

	slog.Debug("due reminders claimed",
		"count", len(models),
	)

	return toReminders(models)
}

func (r *reminderRepositoryImpl) MarkSent(ctx context.Context, ids []domain.ReminderID, now time.Time) (int64, error) {
	return r.transitionClaimed(ctx, ids, map[string]any{
		"status":        string(domain.StatusSent),
		"sent_at":       now,
		"claimed_until": nil,
		"updated_at":    now,
	})
}

func (r *reminderRepositoryImpl) MarkDisabled(ctx context.Context, reasons map[domain.ReminderID]string, now time.Time) (int64, error) {
	byReason := make(map[string][]domain.ReminderID)
	for id, reason := range reasons {
		byReason[reason] = append(byReason[reason], id)
	}

	var total int64

	for reason, ids := range byReason {
		n, err := r.transitionClaimed(ctx, ids, map[string]any{
			"status":          string(domain.StatusDisabled),
			"disabled_reason": reason,
			"disabled_at":     now,
			"claimed_until":   nil,
			"updated_at":      now,
		})
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}

func (r *reminderRepositoryImpl) Release(ctx context.Context, ids []domain.ReminderID, now time.Time) (int64, error) {
	return r.transitionClaimed(ctx, ids, map[string]any{
		"status":        string(domain.StatusPending),
		"claimed_until": nil,
		"updated_at":    now,
	})
}

func (r *reminderRepositoryImpl) MarkNotified(ctx context.Context, ids []domain.ReminderID, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	result := r.db.WithContext(ctx).Model(&ReminderModel{}).
		Where("id IN ?", raw).
		Where("notified_at IS NULL").
		Update("notified_at", now)
	if result.Error != nil {
		slog.Error("failed to mark reminders notified",
			"count", len(raw),
			"error", result.Error,
		)

		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *reminderRepositoryImpl) transitionClaimed(ctx context.Context, ids []domain.ReminderID, values map[string]any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	result := r.db.WithContext(ctx).Model(&ReminderModel{}).
		Where("id IN ?", raw).
		Where("status = ?", string(domain.StatusClaimed)).
		Updates(values)
	if result.Error != nil {
		slog.Error("failed to transition claimed reminders",
			"status", values["status"],
			"count", len(raw),
			"error", result.Error,
		)

		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *reminderRepositoryImpl) whereReference(q *gorm.DB, ref domain.Reference) *gorm.DB {
	kind, id := fromReference(ref)
	if id == nil {
		return q.Where("reference_kind = ? AND reference_id IS NULL", kind)
	}

	return q.Where("reference_kind = ? AND reference_id = ?", kind, *id)
}
