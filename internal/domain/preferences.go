package domain

// NotificationPreferences are the user's global switches. A fresh profile
// has every switch on.
type NotificationPreferences struct {
	AssignmentReminder     bool
	PushNotification       bool
	EmailNotification      bool
	AssignmentNotification bool
}

func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		AssignmentReminder:     true,
		PushNotification:       true,
		EmailNotification:      true,
		AssignmentNotification: true,
	}
}

func (p NotificationPreferences) ChannelEnabled(ch Channel) bool {
	switch ch {
	case ChannelEmail:
		return p.EmailNotification
	case ChannelPush:
		return p.PushNotification
	default:
		return false
	}
}

// PreferencesPatch is a partial update; nil fields are left untouched.
type PreferencesPatch struct {
	AssignmentReminder     *bool
	PushNotification       *bool
	EmailNotification      *bool
	AssignmentNotification *bool
}

func (p PreferencesPatch) IsEmpty() bool {
	return p.AssignmentReminder == nil &&
		p.PushNotification == nil &&
		p.EmailNotification == nil &&
		p.AssignmentNotification == nil
}

func (p PreferencesPatch) Apply(prefs NotificationPreferences) NotificationPreferences {
	if p.AssignmentReminder != nil {
		prefs.AssignmentReminder = *p.AssignmentReminder
	}

	if p.PushNotification != nil {
		prefs.PushNotification = *p.PushNotification
	}

	if p.EmailNotification != nil {
		prefs.EmailNotification = *p.EmailNotification
	}

	if p.AssignmentNotification != nil {
		prefs.AssignmentNotification = *p.AssignmentNotification
	}

	return prefs
}

// TogglesAssignmentReminder reports whether applying the patch flips the
// assignment_reminder switch, which invalidates every generated reminder.
func (p PreferencesPatch) TogglesAssignmentReminder(current NotificationPreferences) bool {
	return p.AssignmentReminder != nil && *p.AssignmentReminder != current.AssignmentReminder
}
