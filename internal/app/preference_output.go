package app

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type PreferencesOutput struct {
	UserID                 string
	AssignmentReminder     bool
	PushNotification       bool
	EmailNotification      bool
	AssignmentNotification bool
	UpdatedAt              time.Time
}

type DeviceOutput struct {
	Token       string
	Platform    string
	DeviceID    string
	DeviceModel string
	Active      bool
	UpdatedAt   time.Time
}

type DevicesOutput struct {
	Devices []DeviceOutput
	Count   int32
}

func FromUserProfile(u *domain.UserProfile) PreferencesOutput {
	p := u.Preferences()

	return PreferencesOutput{
		UserID:                 u.ID().String(),
		AssignmentReminder:     p.AssignmentReminder,
		PushNotification:       p.PushNotification,
		EmailNotification:      p.EmailNotification,
		AssignmentNotification: p.AssignmentNotification,
		UpdatedAt:              u.UpdatedAt(),
	}
}

func FromDeviceToken(d *domain.DeviceToken) DeviceOutput {
	return DeviceOutput{
		Token:       d.Token(),
		Platform:    string(d.Platform()),
		DeviceID:    d.DeviceID(),
		DeviceModel: d.DeviceModel(),
		Active:      d.IsActive(),
		UpdatedAt:   d.UpdatedAt(),
	}
}

func FromDeviceTokens(tokens domain.DeviceTokens) DevicesOutput {
	outputs := make([]DeviceOutput, 0, len(tokens))
	for _, t := range tokens {
		outputs = append(outputs, FromDeviceToken(t))
	}

	return DevicesOutput{
		Devices: outputs,
		Count:   int32(len(outputs)), // #nosec G115
	}
}
