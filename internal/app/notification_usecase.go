package app

import "context"

type NotificationUseCase interface {
	// ListNotifications returns the user's in-app feed, newest first.
	ListNotifications(ctx context.Context, input ListNotificationsInput) (NotificationsOutput, error)
	CountUnread(ctx context.Context, input UserInput) (UnreadCountOutput, error)
	// MarkRead flags one notification as read. Unknown, foreign and
	// already read ids affect nothing.
	MarkRead(ctx context.Context, input NotificationByIDInput) (int64, error)
	MarkAllRead(ctx context.Context, input UserInput) (int64, error)
}
