package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/testutil"
)

func setupReminderUseCase(t *testing.T, now time.Time) (app.ReminderUseCase, *testutil.MemStore) {
	t.Helper()

	store := testutil.NewMemStore()

	return app.NewReminderUseCase(store, fixedClock(now)), store
}

func TestReconcileGeneratesReminders(t *testing.T) {
	tests := []struct {
		name           string
		now            time.Time
		expectedStatus domain.Status
		expectedReason string
	}{
		{
			name:           "future instant is pending",
			now:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedStatus: domain.StatusPending,
		},
		{
			name:           "past instant is born disabled",
			now:            time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC),
			expectedStatus: domain.StatusDisabled,
			expectedReason: domain.ReasonDueDatePassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase, store := setupReminderUseCase(t, tt.now)

			userID := seedUser(t, store, nil)
			assignment := seedAssignment(t, store, userID, nil)
			seedGlobalSchedule(t, store, userID, "24_HOURS")

			out, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
				UserID:       userID.String(),
				AssignmentID: assignment.ID().String(),
			})

			require.NoError(t, err)
			assert.Equal(t, 1, out.Created)
			assert.Empty(t, out.SkipReason)

			reminders := store.Reminders()
			require.Len(t, reminders, 1)
			assert.Equal(t, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), reminders[0].ReminderAt())
			assert.Equal(t, tt.expectedStatus, reminders[0].Status())
			assert.Equal(t, tt.expectedReason, reminders[0].DisabledReason())
			assert.Equal(t, domain.OriginAuto, reminders[0].Origin())
			assert.Equal(t, "Reminder for Essay", reminders[0].Title())
		})
	}
}

func TestReconcileOneReminderPerEnabledEntry(t *testing.T) {
	useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	userID := seedUser(t, store, nil)
	assignment := seedAssignment(t, store, userID, nil)

	seedGlobalSchedule(t, store, userID, "24_HOURS")
	seedGlobalSchedule(t, store, userID, "48_HOURS")

	disabled := seedGlobalSchedule(t, store, userID, "30_MINUTES")
	disabled.Disable()
	store.PutSchedule(disabled)

	scoped, err := domain.NewScheduleEntry(userID, assignment.ID(), domain.MustParseOffset("2_DAYS", domain.DirectionBefore))
	require.NoError(t, err)
	store.PutSchedule(scoped)

	out, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Created)
	assert.Len(t, store.Reminders(), 3)
}

func TestReconcileIsIdempotent(t *testing.T) {
	useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))

	userID := seedUser(t, store, nil)
	assignment := seedAssignment(t, store, userID, nil)
	seedGlobalSchedule(t, store, userID, "24_HOURS")
	seedGlobalSchedule(t, store, userID, "7_DAYS")

	input := app.ReconcileInput{UserID: userID.String(), AssignmentID: assignment.ID().String()}

	first, err := useCase.Reconcile(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 2, first.Created)

	snapshot := func() map[time.Time]domain.Status {
		out := make(map[time.Time]domain.Status)
		for _, r := range store.Reminders() {
			out[r.ReminderAt()] = r.Status()
		}

		return out
	}

	before := snapshot()

	second, err := useCase.Reconcile(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.Deleted)
	assert.Equal(t, 2, second.Created)
	assert.Len(t, store.Reminders(), 2)
	assert.Equal(t, before, snapshot())
}

func TestReconcileSkips(t *testing.T) {
	tests := []struct {
		name           string
		prefs          func(*domain.NotificationPreferences)
		assignment     func(*assignmentOpts)
		expectedReason string
	}{
		{
			name:           "no due date",
			assignment:     func(o *assignmentOpts) { o.due = nil },
			expectedReason: domain.SkipNoDueDate,
		},
		{
			name:           "reminder flag off",
			assignment:     func(o *assignmentOpts) { o.reminder = false },
			expectedReason: domain.SkipReminderFlagOff,
		},
		{
			name:           "assignment reminder preference off",
			prefs:          func(p *domain.NotificationPreferences) { p.AssignmentReminder = false },
			expectedReason: domain.SkipPreferenceDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

			userID := seedUser(t, store, tt.prefs)
			assignment := seedAssignment(t, store, userID, tt.assignment)
			seedGlobalSchedule(t, store, userID, "24_HOURS")

			out, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
				UserID:       userID.String(),
				AssignmentID: assignment.ID().String(),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedReason, out.SkipReason)
			assert.Zero(t, out.Created)
			assert.Empty(t, store.Reminders())
		})
	}
}

func TestReconcileDisablesRemindersOfClosedAssignment(t *testing.T) {
	tests := []struct {
		name           string
		status         domain.AssignmentStatus
		expectedReason string
	}{
		{
			name:           "completed",
			status:         domain.AssignmentStatusCompleted,
			expectedReason: domain.ReasonAssignmentCompleted,
		},
		{
			name:           "cancelled",
			status:         domain.AssignmentStatusCancelled,
			expectedReason: domain.ReasonAssignmentCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

			userID := seedUser(t, store, nil)
			assignment := seedAssignment(t, store, userID, nil)
			seedGlobalSchedule(t, store, userID, "24_HOURS")
			seedGlobalSchedule(t, store, userID, "48_HOURS")

			input := app.ReconcileInput{UserID: userID.String(), AssignmentID: assignment.ID().String()}

			_, err := useCase.Reconcile(context.Background(), input)
			require.NoError(t, err)

			due, _ := assignment.DueDate()
			store.PutAssignment(domain.ReconstituteAssignment(
				assignment.ID(), userID, assignment.Title(), &due, tt.status, true, true, true,
			))

			out, err := useCase.Reconcile(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, int64(2), out.Disabled)

			reminders := store.Reminders()
			require.Len(t, reminders, 2)

			for _, r := range reminders {
				assert.Equal(t, domain.StatusDisabled, r.Status())
				assert.Equal(t, tt.expectedReason, r.DisabledReason())
			}
		})
	}
}

func TestReconcileKeepsPriorRemindersWhenInsertFails(t *testing.T) {
	useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	userID := seedUser(t, store, nil)
	assignment := seedAssignment(t, store, userID, nil)
	seedGlobalSchedule(t, store, userID, "24_HOURS")

	input := app.ReconcileInput{UserID: userID.String(), AssignmentID: assignment.ID().String()}

	_, err := useCase.Reconcile(context.Background(), input)
	require.NoError(t, err)

	before := store.Reminders()
	require.Len(t, before, 1)

	store.SaveAllErr = errors.New("connection reset")

	_, err = useCase.Reconcile(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrInternalError)

	after := store.Reminders()
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID(), after[0].ID())
	assert.Equal(t, domain.StatusPending, after[0].Status())
}

func TestReconcileErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       func(userID domain.UserID) app.ReconcileInput
		expectedErr error
		validation  bool
	}{
		{
			name: "invalid user id",
			input: func(domain.UserID) app.ReconcileInput {
				return app.ReconcileInput{UserID: "nope", AssignmentID: uuid.NewString()}
			},
			validation: true,
		},
		{
			name: "invalid assignment id",
			input: func(userID domain.UserID) app.ReconcileInput {
				return app.ReconcileInput{UserID: userID.String(), AssignmentID: "nope"}
			},
			validation: true,
		},
		{
			name: "unknown assignment",
			input: func(userID domain.UserID) app.ReconcileInput {
				return app.ReconcileInput{UserID: userID.String(), AssignmentID: uuid.NewString()}
			},
			expectedErr: app.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
			userID := seedUser(t, store, nil)

			_, err := useCase.Reconcile(context.Background(), tt.input(userID))

			require.Error(t, err)

			if tt.validation {
				assert.True(t, app.IsValidationError(err))
			} else {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

func TestReconcileUser(t *testing.T) {
	useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	userID := seedUser(t, store, nil)
	seedAssignment(t, store, userID, nil)
	seedAssignment(t, store, userID, func(o *assignmentOpts) { o.due = nil })
	seedGlobalSchedule(t, store, userID, "24_HOURS")

	other := seedUser(t, store, nil)
	seedAssignment(t, store, other, nil)

	out, err := useCase.ReconcileUser(context.Background(), app.ReconcileUserInput{UserID: userID.String()})

	require.NoError(t, err)
	require.Len(t, out.Assignments, 2)

	created := 0
	for _, a := range out.Assignments {
		created += a.Created
	}

	assert.Equal(t, 1, created)
	assert.Len(t, store.Reminders(), 1)
}

func TestDisableAssignmentReminders(t *testing.T) {
	useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	userID := seedUser(t, store, nil)
	assignment := seedAssignment(t, store, userID, nil)
	seedGlobalSchedule(t, store, userID, "24_HOURS")

	_, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
	})
	require.NoError(t, err)

	n, err := useCase.DisableAssignmentReminders(context.Background(), app.DisableAssignmentRemindersInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	reminders := store.Reminders()
	require.Len(t, reminders, 1)
	assert.Equal(t, domain.StatusDisabled, reminders[0].Status())
	assert.Equal(t, domain.ReasonAssignmentCompleted, reminders[0].DisabledReason())
}

func TestPurgeAssignmentReminders(t *testing.T) {
	useCase, store := setupReminderUseCase(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	userID := seedUser(t, store, nil)
	assignment := seedAssignment(t, store, userID, nil)
	seedGlobalSchedule(t, store, userID, "24_HOURS")

	_, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
	})
	require.NoError(t, err)

	_, err = useCase.CreateCustomReminder(context.Background(), app.CreateCustomReminderInput{
		UserID:        userID.String(),
		ReminderAt:    time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC),
		Title:         "Start drafting",
		ReferenceKind: string(domain.ReferenceKindAssignment),
		ReferenceID:   assignment.ID().String(),
	})
	require.NoError(t, err)

	n, err := useCase.PurgeAssignmentReminders(context.Background(), app.PurgeAssignmentRemindersInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Empty(t, store.Reminders())
}

func TestCreateCustomReminder(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		input       func(userID domain.UserID, assignmentID domain.AssignmentID) app.CreateCustomReminderInput
		expectedErr error
		validation  bool
	}{
		{
			name: "free-standing reminder",
			input: func(userID domain.UserID, _ domain.AssignmentID) app.CreateCustomReminderInput {
				return app.CreateCustomReminderInput{
					UserID:     userID.String(),
					ReminderAt: now.Add(2 * time.Hour),
					Title:      "Call the library",
					Message:    "Ask about the late fee",
				}
			},
		},
		{
			name: "reminder referencing an assignment",
			input: func(userID domain.UserID, assignmentID domain.AssignmentID) app.CreateCustomReminderInput {
				return app.CreateCustomReminderInput{
					UserID:        userID.String(),
					ReminderAt:    now.Add(2 * time.Hour),
					Title:         "Outline",
					ReferenceKind: string(domain.ReferenceKindAssignment),
					ReferenceID:   assignmentID.String(),
				}
			},
		},
		{
			name: "past instant",
			input: func(userID domain.UserID, _ domain.AssignmentID) app.CreateCustomReminderInput {
				return app.CreateCustomReminderInput{
					UserID:     userID.String(),
					ReminderAt: now.Add(-time.Minute),
					Title:      "Too late",
				}
			},
			validation: true,
		},
		{
			name: "empty title",
			input: func(userID domain.UserID, _ domain.AssignmentID) app.CreateCustomReminderInput {
				return app.CreateCustomReminderInput{
					UserID:     userID.String(),
					ReminderAt: now.Add(time.Hour),
					Title:      "  ",
				}
			},
			validation: true,
		},
		{
			name: "unknown reference kind",
			input: func(userID domain.UserID, _ domain.AssignmentID) app.CreateCustomReminderInput {
				return app.CreateCustomReminderInput{
					UserID:        userID.String(),
					ReminderAt:    now.Add(time.Hour),
					Title:         "Odd",
					ReferenceKind: "Subject",
					ReferenceID:   uuid.NewString(),
				}
			},
			validation: true,
		},
		{
			name: "missing referenced assignment",
			input: func(userID domain.UserID, _ domain.AssignmentID) app.CreateCustomReminderInput {
				return app.CreateCustomReminderInput{
					UserID:        userID.String(),
					ReminderAt:    now.Add(time.Hour),
					Title:         "Ghost",
					ReferenceKind: string(domain.ReferenceKindAssignment),
					ReferenceID:   uuid.NewString(),
				}
			},
			expectedErr: app.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase, store := setupReminderUseCase(t, now)

			userID := seedUser(t, store, nil)
			assignment := seedAssignment(t, store, userID, nil)
			input := tt.input(userID, assignment.ID())

			out, err := useCase.CreateCustomReminder(context.Background(), input)

			switch {
			case tt.validation:
				require.Error(t, err)
				assert.True(t, app.IsValidationError(err))
				assert.Empty(t, store.Reminders())
			case tt.expectedErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, store.Reminders())
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, out.ID)
				assert.Equal(t, string(domain.StatusPending), out.Status)
				assert.Equal(t, string(domain.OriginCustom), out.Origin)
				assert.Equal(t, string(domain.NotificationTypeOther), out.NotificationType)
				assert.Equal(t, input.ReferenceID, out.ReferenceID)
				assert.Len(t, store.Reminders(), 1)
			}
		})
	}
}

func createCustom(t *testing.T, useCase app.ReminderUseCase, userID domain.UserID, at time.Time) app.ReminderOutput {
	t.Helper()

	out, err := useCase.CreateCustomReminder(context.Background(), app.CreateCustomReminderInput{
		UserID:     userID.String(),
		ReminderAt: at,
		Title:      "Custom",
	})
	require.NoError(t, err)

	return out
}

func TestListReminders(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	useCase, store := setupReminderUseCase(t, now)

	userID := seedUser(t, store, nil)
	assignment := seedAssignment(t, store, userID, nil)
	seedGlobalSchedule(t, store, userID, "24_HOURS")

	_, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
	})
	require.NoError(t, err)

	custom := createCustom(t, useCase, userID, now.Add(time.Hour))

	_, err = useCase.DisableReminder(context.Background(), app.ReminderByIDInput{UserID: userID.String(), ID: custom.ID})
	require.NoError(t, err)

	tests := []struct {
		name          string
		input         app.ListRemindersInput
		expectedCount int32
		validation    bool
	}{
		{name: "all", input: app.ListRemindersInput{UserID: userID.String()}, expectedCount: 2},
		{name: "by origin", input: app.ListRemindersInput{UserID: userID.String(), Origin: "CUSTOM"}, expectedCount: 1},
		{name: "by status", input: app.ListRemindersInput{UserID: userID.String(), Status: "PENDING"}, expectedCount: 1},
		{name: "invalid status", input: app.ListRemindersInput{UserID: userID.String(), Status: "LOST"}, validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := useCase.ListReminders(context.Background(), tt.input)

			if tt.validation {
				require.Error(t, err)
				assert.True(t, app.IsValidationError(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCount, out.Count)
		})
	}

	listed, err := useCase.ListAssignmentReminders(context.Background(), app.ListAssignmentRemindersInput{
		UserID:       userID.String(),
		AssignmentID: assignment.ID().String(),
		Status:       "PENDING",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), listed.Count)
}

func TestReminderOwnership(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	useCase, store := setupReminderUseCase(t, now)

	owner := seedUser(t, store, nil)
	stranger := seedUser(t, store, nil)
	custom := createCustom(t, useCase, owner, now.Add(time.Hour))

	_, err := useCase.GetReminder(context.Background(), app.ReminderByIDInput{UserID: stranger.String(), ID: custom.ID})
	assert.ErrorIs(t, err, app.ErrForbidden)

	err = useCase.DeleteReminder(context.Background(), app.ReminderByIDInput{UserID: stranger.String(), ID: custom.ID})
	assert.ErrorIs(t, err, app.ErrForbidden)

	got, err := useCase.GetReminder(context.Background(), app.ReminderByIDInput{UserID: owner.String(), ID: custom.ID})
	require.NoError(t, err)
	assert.Equal(t, custom.ID, got.ID)
}

func TestDeleteReminder(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("custom reminder is deleted", func(t *testing.T) {
		useCase, store := setupReminderUseCase(t, now)
		userID := seedUser(t, store, nil)
		custom := createCustom(t, useCase, userID, now.Add(time.Hour))

		err := useCase.DeleteReminder(context.Background(), app.ReminderByIDInput{UserID: userID.String(), ID: custom.ID})

		require.NoError(t, err)
		assert.Empty(t, store.Reminders())
	})

	t.Run("missing reminder is a no-op", func(t *testing.T) {
		useCase, store := setupReminderUseCase(t, now)
		userID := seedUser(t, store, nil)

		err := useCase.DeleteReminder(context.Background(), app.ReminderByIDInput{
			UserID: userID.String(),
			ID:     domain.NewReminderID().String(),
		})

		assert.NoError(t, err)
	})

	t.Run("auto reminder is rejected", func(t *testing.T) {
		useCase, store := setupReminderUseCase(t, now)
		userID := seedUser(t, store, nil)
		assignment := seedAssignment(t, store, userID, nil)
		seedGlobalSchedule(t, store, userID, "24_HOURS")

		_, err := useCase.Reconcile(context.Background(), app.ReconcileInput{
			UserID:       userID.String(),
			AssignmentID: assignment.ID().String(),
		})
		require.NoError(t, err)

		auto := store.Reminders()[0]
		err = useCase.DeleteReminder(context.Background(), app.ReminderByIDInput{UserID: userID.String(), ID: auto.ID().String()})

		require.Error(t, err)
		assert.True(t, app.IsValidationError(err))
		assert.Len(t, store.Reminders(), 1)
	})
}

func TestDisableReminderIsIdempotent(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	useCase, store := setupReminderUseCase(t, now)

	userID := seedUser(t, store, nil)
	custom := createCustom(t, useCase, userID, now.Add(time.Hour))
	input := app.ReminderByIDInput{UserID: userID.String(), ID: custom.ID}

	first, err := useCase.DisableReminder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDisabled), first.Status)
	assert.Equal(t, domain.ReasonDisabledByUser, first.DisabledReason)

	second, err := useCase.DisableReminder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, first.DisabledAt, second.DisabledAt)
}

func TestGetReminderHistory(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	useCase, store := setupReminderUseCase(t, now)

	owner := seedUser(t, store, nil)
	stranger := seedUser(t, store, nil)
	custom := createCustom(t, useCase, owner, now.Add(time.Hour))
	other := createCustom(t, useCase, owner, now.Add(2*time.Hour))

	reminderID, err := domain.ReminderIDFromString(custom.ID)
	require.NoError(t, err)

	otherID, err := domain.ReminderIDFromString(other.ID)
	require.NoError(t, err)

	require.NoError(t, store.Repositories().History.CreateMany(context.Background(), []*domain.SendHistory{
		domain.NewSkippedSend(reminderID, domain.ChannelPush, domain.ReasonNoDeviceTokens, nil, now),
		domain.NewAttemptedSend(reminderID, domain.ChannelEmail, errors.New("mailbox full"), nil, now),
		domain.NewAttemptedSend(otherID, domain.ChannelEmail, nil, nil, now),
	}))

	out, err := useCase.GetReminderHistory(context.Background(), app.ReminderByIDInput{UserID: owner.String(), ID: custom.ID})
	require.NoError(t, err)
	require.Equal(t, int32(2), out.Count)
	assert.Equal(t, string(domain.ChannelPush), out.History[0].Channel)
	assert.False(t, out.History[0].CanBeSent)
	assert.Equal(t, domain.ReasonNoDeviceTokens, out.History[0].Reason)
	assert.True(t, out.History[1].CanBeSent)
	assert.Equal(t, "mailbox full", out.History[1].Reason)

	_, err = useCase.GetReminderHistory(context.Background(), app.ReminderByIDInput{UserID: stranger.String(), ID: custom.ID})
	assert.ErrorIs(t, err, app.ErrForbidden)

	_, err = useCase.GetReminderHistory(context.Background(), app.ReminderByIDInput{UserID: owner.String(), ID: domain.NewReminderID().String()})
	assert.ErrorIs(t, err, app.ErrNotFound)
}
