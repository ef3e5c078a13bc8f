package app

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type preferenceUseCaseImpl struct {
	uow        domain.UnitOfWork
	reconciler reconciler
}

func NewPreferenceUseCase(uow domain.UnitOfWork, clock Clock) PreferenceUseCase {
	return &preferenceUseCaseImpl{
		uow:        uow,
		reconciler: newReconciler(clock),
	}
}

func (uc *preferenceUseCaseImpl) GetPreferences(ctx context.Context, input UserInput) (PreferencesOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return PreferencesOutput{}, NewValidationError("user_id", err.Error())
	}

	user, err := uc.uow.Repositories().Users.FindByID(ctx, userID)
	if err != nil {
		return PreferencesOutput{}, wrapStoreError(err)
	}

	return FromUserProfile(user), nil
}

func (uc *preferenceUseCaseImpl) UpdatePreferences(ctx context.Context, input UpdatePreferencesInput) (PreferencesOutput, error) {
	slog.Debug("updating notification preferences",
		"user_id", input.UserID,
	)

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return PreferencesOutput{}, NewValidationError("user_id", err.Error())
	}

	patch := domain.PreferencesPatch{
		AssignmentReminder:     input.AssignmentReminder,
		PushNotification:       input.PushNotification,
		EmailNotification:      input.EmailNotification,
		AssignmentNotification: input.AssignmentNotification,
	}

	if patch.IsEmpty() {
		return PreferencesOutput{}, NewValidationError("preferences", "at least one preference is required")
	}

	var (
		user    *domain.UserProfile
		toggled bool
	)

	if err := uc.uow.Do(ctx, func(repos domain.Repositories) error {
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		toggled = patch.TogglesAssignmentReminder(user.Preferences())
		user.ApplyPreferences(patch)

		return repos.Users.UpdatePreferences(ctx, user)
	}); err != nil {
		if !isNotFound(err) {
			slog.Error("failed to update preferences",
				"error", err,
				"user_id", input.UserID,
			)
		}

		return PreferencesOutput{}, wrapStoreError(err)
	}

	if toggled {
		if _, err := reconcileUser(ctx, uc.uow, uc.reconciler, userID); err != nil {
			return PreferencesOutput{}, err
		}
	}

	slog.Info("notification preferences updated",
		"user_id", input.UserID,
		"reconciled", toggled,
	)

	return FromUserProfile(user), nil
}

func (uc *preferenceUseCaseImpl) RegisterDevice(ctx context.Context, input RegisterDeviceInput) (DeviceOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return DeviceOutput{}, NewValidationError("user_id", err.Error())
	}

	platform, err := domain.NewPlatform(input.Platform)
	if err != nil {
		return DeviceOutput{}, NewValidationError("platform", err.Error())
	}

	token, err := domain.NewDeviceToken(userID, input.Token, platform, input.DeviceID, input.DeviceModel)
	if err != nil {
		return DeviceOutput{}, NewValidationError("token", err.Error())
	}

	if err := uc.uow.Repositories().Devices.Upsert(ctx, token); err != nil {
		slog.Error("failed to register device token",
			"error", err,
			"user_id", input.UserID,
			"platform", string(platform),
		)

		return DeviceOutput{}, wrapStoreError(err)
	}

	slog.Info("device token registered",
		"user_id", input.UserID,
		"platform", string(platform),
	)

	return FromDeviceToken(token), nil
}

func (uc *preferenceUseCaseImpl) ListDevices(ctx context.Context, input UserInput) (DevicesOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return DevicesOutput{}, NewValidationError("user_id", err.Error())
	}

	tokens, err := uc.uow.Repositories().Devices.FindByUser(ctx, userID)
	if err != nil {
		return DevicesOutput{}, wrapStoreError(err)
	}

	return FromDeviceTokens(tokens), nil
}
