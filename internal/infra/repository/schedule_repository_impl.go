package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type scheduleRepositoryImpl struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) domain.ScheduleRepository {
	return &scheduleRepositoryImpl{
		db: db,
	}
}

func (r *scheduleRepositoryImpl) Save(ctx context.Context, entry *domain.ScheduleEntry) error {
	slog.Debug("saving schedule entry to database",
		"schedule_id", entry.ID().String(),
	)

	if err := r.db.WithContext(ctx).Create(FromScheduleEntry(entry)).Error; err != nil {
		return r.translate("failed to save schedule entry to database", entry.ID(), err)
	}

	return nil
}

func (r *scheduleRepositoryImpl) SaveAll(ctx context.Context, entries []*domain.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]*ScheduleEntryModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, FromScheduleEntry(e))
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrScheduleAlreadyExists
		}

		slog.Error("failed to save schedule entries to database",
			"count", len(models),
			"error", err,
		)

		return err
	}

	return nil
}

func (r *scheduleRepositoryImpl) Update(ctx context.Context, entry *domain.ScheduleEntry) error {
	m := FromScheduleEntry(entry)

	result := r.db.WithContext(ctx).Model(&ScheduleEntryModel{}).Where("id = ?", m.ID).Select("*").Omit("created_at").Updates(m)
	if result.Error != nil {
		return r.translate("failed to update schedule entry in database", entry.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrScheduleNotFound
	}

	return nil
}

func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id domain.ScheduleID) error {
	slog.Debug("deleting schedule entry from database",
		"schedule_id", id.String(),
	)

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&ScheduleEntryModel{})
	if result.Error != nil {
		slog.Error("failed to delete schedule entry from database",
			"schedule_id", id.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrScheduleNotFound
	}

	return nil
}

func (r *scheduleRepositoryImpl) FindByID(ctx context.Context, id domain.ScheduleID) (*domain.ScheduleEntry, error) {
	var m ScheduleEntryModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrScheduleNotFound
		}

		slog.Error("failed to find schedule entry by ID",
			"schedule_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *scheduleRepositoryImpl) FindByUser(ctx context.Context, userID domain.UserID, filter domain.ScheduleFilter) ([]*domain.ScheduleEntry, error) {
	var scopes []string

	if filter.IncludeGlobal {
		scopes = append(scopes, scopeGlobal)
	}

	if !filter.AssignmentID.IsZero() {
		scopes = append(scopes, scopeKey(filter.AssignmentID))
	}

	if len(scopes) == 0 {
		return []*domain.ScheduleEntry{}, nil
	}

	return r.findByScopes(ctx, userID, scopes)
}

func (r *scheduleRepositoryImpl) FindApplicable(ctx context.Context, userID domain.UserID, assignmentID domain.AssignmentID) ([]*domain.ScheduleEntry, error) {
	return r.findByScopes(ctx, userID, []string{scopeGlobal, scopeKey(assignmentID)})
}

func (r *scheduleRepositoryImpl) FindSlot(ctx context.Context, userID domain.UserID, assignmentID domain.AssignmentID, offset domain.Offset) (*domain.ScheduleEntry, error) {
	var m ScheduleEntryModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND scope = ?", userID.String(), scopeKey(assignmentID)).
		Where("amount = ? AND unit = ? AND direction = ?", offset.Amount(), string(offset.Unit()), string(offset.Direction())).
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrScheduleNotFound
		}

		slog.Error("failed to find schedule slot",
			"user_id", userID.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *scheduleRepositoryImpl) CountDefaults(ctx context.Context, userID domain.UserID) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&ScheduleEntryModel{}).
		Where("user_id = ? AND is_default = ?", userID.String(), true).
		Count(&count).Error
	if err != nil {
		slog.Error("failed to count default schedule entries",
			"user_id", userID.String(),
			"error", err,
		)

		return 0, err
	}

	return count, nil
}

func (r *scheduleRepositoryImpl) findByScopes(ctx context.Context, userID domain.UserID, scopes []string) ([]*domain.ScheduleEntry, error) {
	var models []ScheduleEntryModel

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND scope IN ?", userID.String(), scopes).
		Order("created_at ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		slog.Error("failed to find schedule entries",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, err
	}

	return toScheduleEntries(models)
}

func (r *scheduleRepositoryImpl) translate(msg string, id domain.ScheduleID, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrScheduleAlreadyExists
	}

	slog.Error(msg,
		"schedule_id", id.String(),
		"error", err,
	)

	return err
}
