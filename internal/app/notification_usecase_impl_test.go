package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/testutil"
)

var inboxAt = time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)

func setupNotificationUseCase(t *testing.T) (app.NotificationUseCase, *testutil.MemStore) {
	t.Helper()

	store := testutil.NewMemStore()

	return app.NewNotificationUseCase(store), store
}

func seedNotifications(t *testing.T, store *testutil.MemStore, userID domain.UserID, n int) []*domain.Notification {
	t.Helper()

	out := make([]*domain.Notification, 0, n)

	for i := range n {
		r, err := domain.NewCustomReminder(userID, domain.Reference{}, inboxAt.Add(time.Hour), "Call advisor", "", inboxAt)
		require.NoError(t, err)

		out = append(out, domain.NewNotificationFromReminder(r, inboxAt.Add(time.Duration(i)*time.Minute)))
	}

	require.NoError(t, store.Repositories().Notifications.CreateMany(context.Background(), out))

	return out
}

func TestListNotifications(t *testing.T) {
	useCase, store := setupNotificationUseCase(t)
	userID := newUserID(t)
	seeded := seedNotifications(t, store, userID, 3)
	seedNotifications(t, store, newUserID(t), 2)

	tests := []struct {
		name          string
		input         app.ListNotificationsInput
		expectedCount int32
		validation    bool
	}{
		{name: "default limit", input: app.ListNotificationsInput{UserID: userID.String()}, expectedCount: 3},
		{name: "explicit limit", input: app.ListNotificationsInput{UserID: userID.String(), Limit: 2}, expectedCount: 2},
		{name: "negative limit", input: app.ListNotificationsInput{UserID: userID.String(), Limit: -1}, validation: true},
		{name: "limit too large", input: app.ListNotificationsInput{UserID: userID.String(), Limit: 1000}, validation: true},
		{name: "invalid user id", input: app.ListNotificationsInput{UserID: uuid.NewString()}, validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := useCase.ListNotifications(context.Background(), tt.input)

			if tt.validation {
				require.Error(t, err)
				assert.True(t, app.IsValidationError(err))

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectedCount, out.Count)
			assert.Equal(t, seeded[2].ID().String(), out.Notifications[0].ID)

			for _, n := range out.Notifications {
				assert.Equal(t, userID.String(), n.UserID)
				assert.False(t, n.Read)
			}
		})
	}
}

func TestMarkNotificationRead(t *testing.T) {
	useCase, store := setupNotificationUseCase(t)
	owner := newUserID(t)
	stranger := newUserID(t)
	seeded := seedNotifications(t, store, owner, 2)

	count, err := useCase.CountUnread(context.Background(), app.UserInput{UserID: owner.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Unread)

	n, err := useCase.MarkRead(context.Background(), app.NotificationByIDInput{UserID: stranger.String(), ID: seeded[0].ID().String()})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = useCase.MarkRead(context.Background(), app.NotificationByIDInput{UserID: owner.String(), ID: seeded[0].ID().String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = useCase.MarkRead(context.Background(), app.NotificationByIDInput{UserID: owner.String(), ID: seeded[0].ID().String()})
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err = useCase.CountUnread(context.Background(), app.UserInput{UserID: owner.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Unread)

	_, err = useCase.MarkRead(context.Background(), app.NotificationByIDInput{UserID: owner.String(), ID: "not-a-uuid"})
	require.Error(t, err)
	assert.True(t, app.IsValidationError(err))
}

func TestMarkAllNotificationsRead(t *testing.T) {
	useCase, store := setupNotificationUseCase(t)
	owner := newUserID(t)
	other := newUserID(t)
	seedNotifications(t, store, owner, 3)
	seedNotifications(t, store, other, 1)

	n, err := useCase.MarkAllRead(context.Background(), app.UserInput{UserID: owner.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	count, err := useCase.CountUnread(context.Background(), app.UserInput{UserID: owner.String()})
	require.NoError(t, err)
	assert.Zero(t, count.Unread)

	count, err = useCase.CountUnread(context.Background(), app.UserInput{UserID: other.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Unread)

	_, err = useCase.MarkAllRead(context.Background(), app.UserInput{UserID: "nope"})
	require.Error(t, err)
	assert.True(t, app.IsValidationError(err))
}

func TestMarkReadRolledBackWithTransaction(t *testing.T) {
	store := testutil.NewMemStore()
	owner := newUserID(t)
	seedNotifications(t, store, owner, 1)

	err := store.Do(context.Background(), func(repos domain.Repositories) error {
		if _, err := repos.Notifications.MarkAllRead(context.Background(), owner); err != nil {
			return err
		}

		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	unread, err := store.Repositories().Notifications.CountUnread(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
