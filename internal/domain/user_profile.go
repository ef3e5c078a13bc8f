package domain

import "time"

// UserProfile is the slice of the user record the reminder engine reads.
type UserProfile struct {
	id          UserID
	email       string
	name        string
	preferences NotificationPreferences
	updatedAt   time.Time
}

func ReconstituteUserProfile(
	id UserID,
	email string,
	name string,
	preferences NotificationPreferences,
	updatedAt time.Time,
) *UserProfile {
	return &UserProfile{
		id:          id,
		email:       email,
		name:        name,
		preferences: preferences,
		updatedAt:   updatedAt,
	}
}

func (u *UserProfile) ApplyPreferences(patch PreferencesPatch) {
	if patch.IsEmpty() {
		return
	}

	u.preferences = patch.Apply(u.preferences)
	u.updatedAt = time.Now()
}

func (u *UserProfile) ID() UserID {
	return u.id
}

func (u *UserProfile) Email() string {
	return u.email
}

func (u *UserProfile) Name() string {
	return u.name
}

func (u *UserProfile) Preferences() NotificationPreferences {
	return u.preferences
}

func (u *UserProfile) UpdatedAt() time.Time {
	return u.updatedAt
}

// Recipient bundles what a sweep needs to decide and address deliveries
// for one user.
type Recipient struct {
	Profile *UserProfile
	Tokens  DeviceTokens
}

func (r Recipient) Exists() bool {
	return r.Profile != nil
}
