package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyDeviceToken = errors.New("device token cannot be empty")
	ErrDeviceNotFound   = errors.New("device token not found")
)

type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
	PlatformUnknown Platform = "unknown"
)

func NewPlatform(p string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(p))) {
	case PlatformAndroid:
		return PlatformAndroid, nil
	case PlatformIOS:
		return PlatformIOS, nil
	case PlatformWeb:
		return PlatformWeb, nil
	case PlatformUnknown, "":
		return PlatformUnknown, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPlatform, p)
	}
}

// Routable reports whether a push transport exists for the platform.
func (p Platform) Routable() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

type DeviceToken struct {
	userID      UserID
	token       string
	platform    Platform
	deviceID    string
	deviceModel string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewDeviceToken(userID UserID, token string, platform Platform, deviceID, deviceModel string) (*DeviceToken, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyDeviceToken
	}

	now := time.Now()

	return &DeviceToken{
		userID:      userID,
		token:       token,
		platform:    platform,
		deviceID:    deviceID,
		deviceModel: deviceModel,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstituteDeviceToken(
	userID UserID,
	token string,
	platform Platform,
	deviceID string,
	deviceModel string,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) *DeviceToken {
	return &DeviceToken{
		userID:      userID,
		token:       token,
		platform:    platform,
		deviceID:    deviceID,
		deviceModel: deviceModel,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (d *DeviceToken) Deactivate() {
	d.active = false
	d.updatedAt = time.Now()
}

func (d *DeviceToken) UserID() UserID {
	return d.userID
}

func (d *DeviceToken) Token() string {
	return d.token
}

func (d *DeviceToken) Platform() Platform {
	return d.platform
}

func (d *DeviceToken) DeviceID() string {
	return d.deviceID
}

func (d *DeviceToken) DeviceModel() string {
	return d.deviceModel
}

func (d *DeviceToken) IsActive() bool {
	return d.active
}

func (d *DeviceToken) CreatedAt() time.Time {
	return d.createdAt
}

func (d *DeviceToken) UpdatedAt() time.Time {
	return d.updatedAt
}

type DeviceTokens []*DeviceToken

// Deliverable returns the active tokens some push transport can reach.
func (d DeviceTokens) Deliverable() DeviceTokens {
	out := make(DeviceTokens, 0, len(d))

	for _, t := range d {
		if t.IsActive() && t.Platform().Routable() {
			out = append(out, t)
		}
	}

	return out
}

func (d DeviceTokens) ByPlatform() map[Platform]DeviceTokens {
	out := make(map[Platform]DeviceTokens)

	for _, t := range d {
		out[t.Platform()] = append(out[t.Platform()], t)
	}

	return out
}

func (d DeviceTokens) Count() int {
	return len(d)
}
