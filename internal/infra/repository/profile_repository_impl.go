package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type deviceTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) domain.DeviceTokenRepository {
	return &deviceTokenRepositoryImpl{
		db: db,
	}
}

// Upsert moves a token to its latest owner and reactivates it.
func (r *deviceTokenRepositoryImpl) Upsert(ctx context.Context, token *domain.DeviceToken) error {
	m := FromDeviceToken(token)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "platform", "device_id", "device_model", "is_active", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		slog.Error("failed to upsert device token",
			"user_id", m.UserID,
			"platform", m.Platform,
			"error", err,
		)

		return err
	}

	return nil
}

func (r *deviceTokenRepositoryImpl) FindByUser(ctx context.Context, userID domain.UserID) (domain.DeviceTokens, error) {
	var models []DeviceTokenModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID.String()).Order("token ASC").Find(&models).Error; err != nil {
		slog.Error("failed to find device tokens",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, err
	}

	return toDeviceTokens(models)
}

func (r *deviceTokenRepositoryImpl) FindActiveByUsers(ctx context.Context, userIDs []domain.UserID) (map[domain.UserID]domain.DeviceTokens, error) {
	out := make(map[domain.UserID]domain.DeviceTokens)
	if len(userIDs) == 0 {
		return out, nil
	}

	var models []DeviceTokenModel

	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND is_active = ?", userIDStrings(userIDs), true).
		Order("token ASC").
		Find(&models).Error
	if err != nil {
		slog.Error("failed to find active device tokens",
			"users", len(userIDs),
			"error", err,
		)

		return nil, err
	}

	tokens, err := toDeviceTokens(models)
	if err != nil {
		return nil, err
	}

	for _, t := range tokens {
		out[t.UserID()] = append(out[t.UserID()], t)
	}

	return out, nil
}

func (r *deviceTokenRepositoryImpl) Deactivate(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Model(&DeviceTokenModel{}).
		Where("token IN ? AND is_active = ?", tokens, true).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		slog.Error("failed to deactivate device tokens",
			"count", len(tokens),
			"error", result.Error,
		)

		return 0, result.Error
	}

	slog.Info("device tokens deactivated",
		"count", result.RowsAffected,
	)

	return result.RowsAffected, nil
}

func toDeviceTokens(models []DeviceTokenModel) (domain.DeviceTokens, error) {
	out := make(domain.DeviceTokens, 0, len(models))

	for _, m := range models {
		t, err := m.ToEntity()
		if err != nil {
			return nil, err
		}

		out = append(out, t)
	}

	return out, nil
}

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepositoryImpl{
		db: db,
	}
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id domain.UserID) (*domain.UserProfile, error) {
	var m UserModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}

		slog.Error("failed to find user by ID",
			"user_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *userRepositoryImpl) FindByIDs(ctx context.Context, ids []domain.UserID) (map[domain.UserID]*domain.UserProfile, error) {
	out := make(map[domain.UserID]*domain.UserProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var models []UserModel

	if err := r.db.WithContext(ctx).Where("id IN ?", userIDStrings(ids)).Find(&models).Error; err != nil {
		slog.Error("failed to find users",
			"count", len(ids),
			"error", err,
		)

		return nil, err
	}

	for _, m := range models {
		u, err := m.ToEntity()
		if err != nil {
			return nil, err
		}

		out[u.ID()] = u
	}

	return out, nil
}

func (r *userRepositoryImpl) UpdatePreferences(ctx context.Context, user *domain.UserProfile) error {
	m := FromUserProfile(user)

	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"notification_preferences": m.NotificationPreferences,
		"updated_at":               m.UpdatedAt,
	})
	if result.Error != nil {
		slog.Error("failed to update notification preferences",
			"user_id", m.ID,
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

type assignmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) domain.AssignmentRepository {
	return &assignmentRepositoryImpl{
		db: db,
	}
}

func (r *assignmentRepositoryImpl) FindByID(ctx context.Context, userID domain.UserID, id domain.AssignmentID) (*domain.Assignment, error) {
	var m AssignmentModel

	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id.String(), userID.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssignmentNotFound
		}

		slog.Error("failed to find assignment",
			"assignment_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *assignmentRepositoryImpl) FindIDsByUser(ctx context.Context, userID domain.UserID) ([]domain.AssignmentID, error) {
	var raw []string

	err := r.db.WithContext(ctx).Model(&AssignmentModel{}).
		Where("user_id = ?", userID.String()).
		Order("id ASC").
		Pluck("id", &raw).Error
	if err != nil {
		slog.Error("failed to list assignments",
			"user_id", userID.String(),
			"error", err,
		)

		return nil, err
	}

	out := make([]domain.AssignmentID, 0, len(raw))

	for _, s := range raw {
		id, err := domain.AssignmentIDFromString(s)
		if err != nil {
			return nil, err
		}

		out = append(out, id)
	}

	return out, nil
}

func userIDStrings(ids []domain.UserID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
