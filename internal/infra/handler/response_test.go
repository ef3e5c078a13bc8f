package handler_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/handler"
)

func TestFromReminderDTOSuccess(t *testing.T) {
	sentAt := time.Date(2025, 1, 9, 0, 1, 0, 0, time.UTC)

	tests := []struct {
		name   string
		output app.ReminderOutput
		absent []string
	}{
		{
			name: "sent auto reminder",
			output: app.ReminderOutput{
				ID:               "0191c7f0-7c3d-7000-8000-000000000001",
				UserID:           "0191c7f0-7c3d-7000-8000-000000000002",
				ReferenceKind:    "Assignment",
				ReferenceID:      "0191c7f0-7c3d-7000-8000-000000000003",
				ReminderAt:       time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
				Title:            "Reminder for Essay",
				NotificationType: "ASSIGNMENT",
				Origin:           "AUTO",
				ScheduleID:       "0191c7f0-7c3d-7000-8000-000000000004",
				Status:           "SENT",
				SentAt:           &sentAt,
			},
			absent: []string{"disabled_reason", "disabled_at"},
		},
		{
			name: "standalone custom reminder",
			output: app.ReminderOutput{
				ID:               "0191c7f0-7c3d-7000-8000-000000000005",
				UserID:           "0191c7f0-7c3d-7000-8000-000000000002",
				ReminderAt:       time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
				Title:            "Call advisor",
				NotificationType: "OTHER",
				Origin:           "CUSTOM",
				Status:           "PENDING",
			},
			absent: []string{"reference_kind", "reference_id", "schedule_id", "sent_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := handler.FromReminderDTO(tt.output)

			assert.Equal(t, tt.output.ID, response.ID)
			assert.Equal(t, tt.output.ReferenceID, response.ReferenceID)
			assert.Equal(t, tt.output.Status, response.Status)
			assert.Equal(t, tt.output.SentAt, response.SentAt)

			raw, err := json.Marshal(response)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(raw, &fields))

			for _, key := range tt.absent {
				assert.NotContains(t, fields, key)
			}
		})
	}
}

func TestFromRemindersDTOPreservesOrderSuccess(t *testing.T) {
	output := app.RemindersOutput{
		Reminders: []app.ReminderOutput{
			{ID: "c"},
			{ID: "a"},
			{ID: "b"},
		},
		Count: 3,
	}

	response := handler.FromRemindersDTO(output)

	require.Len(t, response.Reminders, 3)
	assert.Equal(t, int32(3), response.Count)
	assert.Equal(t, "c", response.Reminders[0].ID)
	assert.Equal(t, "a", response.Reminders[1].ID)
	assert.Equal(t, "b", response.Reminders[2].ID)
}

func TestFromRemindersDTOEmptySuccess(t *testing.T) {
	response := handler.FromRemindersDTO(app.RemindersOutput{})

	raw, err := json.Marshal(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reminders":[],"count":0}`, string(raw))
}

func TestFromScheduleDTOSuccess(t *testing.T) {
	output := app.SchedulesOutput{
		Schedules: []app.ScheduleOutput{
			{ID: "s1", Offset: "24_HOURS", Direction: "BEFORE", Enabled: true, Default: true},
			{ID: "s2", AssignmentID: "a1", Offset: "3_DAYS", Direction: "AFTER"},
		},
		Count: 2,
	}

	response := handler.FromSchedulesDTO(output)

	require.Len(t, response.Schedules, 2)
	assert.True(t, response.Schedules[0].Default)
	assert.Empty(t, response.Schedules[0].AssignmentID)
	assert.Equal(t, "a1", response.Schedules[1].AssignmentID)
	assert.Equal(t, "AFTER", response.Schedules[1].Direction)
}

func TestFromReconcileUserDTOSuccess(t *testing.T) {
	output := app.ReconcileUserOutput{
		Assignments: []app.ReconcileOutput{
			{AssignmentID: "a1", Deleted: 2, Created: 3},
			{AssignmentID: "a2", SkipReason: "no due date"},
		},
	}

	response := handler.FromReconcileUserDTO(output)

	require.Len(t, response.Assignments, 2)
	assert.Equal(t, 3, response.Assignments[0].Created)
	assert.Equal(t, "no due date", response.Assignments[1].SkipReason)
}
