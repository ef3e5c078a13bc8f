package app

type UserInput struct {
	UserID string
}

type UpdatePreferencesInput struct {
	UserID                 string
	AssignmentReminder     *bool
	PushNotification       *bool
	EmailNotification      *bool
	AssignmentNotification *bool
}

type RegisterDeviceInput struct {
	UserID      string
	Token       string
	Platform    string
	DeviceID    string
	DeviceModel string
}
