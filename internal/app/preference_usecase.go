package app

import "context"

type PreferenceUseCase interface {
	GetPreferences(ctx context.Context, input UserInput) (PreferencesOutput, error)
	// UpdatePreferences patches the given switches. Flipping
	// assignment_reminder regenerates every assignment of the user.
	UpdatePreferences(ctx context.Context, input UpdatePreferencesInput) (PreferencesOutput, error)
	RegisterDevice(ctx context.Context, input RegisterDeviceInput) (DeviceOutput, error)
	ListDevices(ctx context.Context, input UserInput) (DevicesOutput, error)
}
