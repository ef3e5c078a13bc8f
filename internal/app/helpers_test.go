package app_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/testutil"
)

var dueJan10 = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) app.Clock {
	return func() time.Time { return t }
}

// mutableClock lets a test move time forward between calls.
type mutableClock struct {
	now time.Time
}

func (c *mutableClock) Clock() app.Clock {
	return func() time.Time { return c.now }
}

func newUserID(t *testing.T) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	return id
}

func seedUser(t *testing.T, store *testutil.MemStore, mutate func(*domain.NotificationPreferences)) domain.UserID {
	t.Helper()

	id := newUserID(t)
	prefs := domain.DefaultNotificationPreferences()

	if mutate != nil {
		mutate(&prefs)
	}

	store.PutUser(domain.ReconstituteUserProfile(id, "student@example.com", "Student", prefs, dueJan10))

	return id
}

type assignmentOpts struct {
	due      *time.Time
	status   domain.AssignmentStatus
	reminder bool
	email    bool
	push     bool
}

func seedAssignment(t *testing.T, store *testutil.MemStore, userID domain.UserID, mutate func(*assignmentOpts)) *domain.Assignment {
	t.Helper()

	due := dueJan10
	opts := assignmentOpts{
		due:      &due,
		status:   domain.AssignmentStatusPending,
		reminder: true,
		email:    true,
		push:     true,
	}

	if mutate != nil {
		mutate(&opts)
	}

	id, err := domain.AssignmentIDFromUUID(uuid.New())
	require.NoError(t, err)

	a := domain.ReconstituteAssignment(id, userID, "Essay", opts.due, opts.status, opts.reminder, opts.email, opts.push)
	store.PutAssignment(a)

	return a
}

func seedGlobalSchedule(t *testing.T, store *testutil.MemStore, userID domain.UserID, spec string) *domain.ScheduleEntry {
	t.Helper()

	entry, err := domain.NewScheduleEntry(userID, domain.AssignmentID{}, domain.MustParseOffset(spec, domain.DirectionBefore))
	require.NoError(t, err)

	store.PutSchedule(entry)

	return entry
}

func seedDevice(t *testing.T, store *testutil.MemStore, userID domain.UserID, token string, platform domain.Platform) {
	t.Helper()

	d, err := domain.NewDeviceToken(userID, token, platform, "device-"+token, "model")
	require.NoError(t, err)

	store.PutDevice(d)
}

func remindersWithStatus(store *testutil.MemStore, status domain.Status) []*domain.Reminder {
	var out []*domain.Reminder

	for _, r := range store.Reminders() {
		if r.Status() == status {
			out = append(out, r)
		}
	}

	return out
}
