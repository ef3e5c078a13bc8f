package app

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

type ListNotificationsInput struct {
	UserID string
	Limit  int
}

type NotificationByIDInput struct {
	UserID string
	ID     string
}
