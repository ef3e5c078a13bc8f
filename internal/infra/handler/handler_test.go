package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/infra/handler"
	"github.com/KasumiMercury/primind-assignment-reminder/internal/testutil"
)

var (
	testNow   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testDueAt = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
)

type testEnv struct {
	router *gin.Engine
	store  *testutil.MemStore
	userID domain.UserID
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewMemStore()
	clock := func() time.Time { return testNow }

	userID, err := domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)
	store.PutUser(domain.ReconstituteUserProfile(
		userID, "student@example.com", "Student", domain.DefaultNotificationPreferences(), testNow,
	))

	router := gin.New()

	user := router.Group("/api/v1/users/:user_id")
	handler.NewReminderHandler(app.NewReminderUseCase(store, clock)).RegisterRoutes(user)
	handler.NewScheduleHandler(app.NewScheduleUseCase(store, clock)).RegisterRoutes(user)
	handler.NewPreferenceHandler(app.NewPreferenceUseCase(store, clock)).RegisterRoutes(user)
	handler.NewNotificationHandler(app.NewNotificationUseCase(store)).RegisterRoutes(user)

	internal := router.Group("/internal")
	handler.NewSweepHandler(app.NewSweepUseCase(store, nil, nil, nil, nil, app.SweepConfig{}, clock)).RegisterRoutes(internal)

	return &testEnv{
		router: router,
		store:  store,
		userID: userID,
	}
}

func (e *testEnv) seedAssignment(t *testing.T) domain.AssignmentID {
	t.Helper()

	id, err := domain.AssignmentIDFromUUID(uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	due := testDueAt
	e.store.PutAssignment(domain.ReconstituteAssignment(
		id, e.userID, "Essay", &due, domain.AssignmentStatusInProgress, true, true, true,
	))

	return id
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1/users/"+e.userID.String()+path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func TestAssignmentLifecycleHandlers(t *testing.T) {
	env := setupTestRouter(t)
	assignmentID := env.seedAssignment(t)
	base := "/assignments/" + assignmentID.String()

	rec := env.do(t, http.MethodPost, "/schedules/defaults", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(3), decode[handler.SchedulesResponse](t, rec).Count)

	rec = env.do(t, http.MethodPost, base+"/changed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[handler.ReconcileResponse](t, rec).Created)

	rec = env.do(t, http.MethodPost, base+"/changed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	reconciled := decode[handler.ReconcileResponse](t, rec)
	assert.Equal(t, int64(3), reconciled.Deleted)
	assert.Equal(t, 3, reconciled.Created)

	rec = env.do(t, http.MethodGet, base+"/reminders?status=PENDING", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decode[handler.RemindersResponse](t, rec)
	require.Len(t, listed.Reminders, 3)

	for _, r := range listed.Reminders {
		assert.Equal(t, "AUTO", r.Origin)
		assert.Equal(t, "Assignment", r.ReferenceKind)
		assert.Equal(t, assignmentID.String(), r.ReferenceID)
	}

	rec = env.do(t, http.MethodPost, base+"/closed", map[string]string{"status": "CANCELLED"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[handler.AffectedResponse](t, rec).Affected)

	rec = env.do(t, http.MethodGet, base+"/reminders?status=DISABLED", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, r := range decode[handler.RemindersResponse](t, rec).Reminders {
		assert.Equal(t, domain.ReasonAssignmentCancelled, r.DisabledReason)
	}
}

func TestAssignmentHookHandlersError(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
	}{
		{
			name:           "changed with invalid assignment id",
			method:         http.MethodPost,
			path:           "/assignments/not-a-uuid/changed",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "changed with unknown assignment",
			method:         http.MethodPost,
			path:           "/assignments/" + uuid.NewString() + "/changed",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "closed with unsupported status",
			method:         http.MethodPost,
			path:           "/assignments/" + uuid.NewString() + "/closed",
			body:           map[string]string{"status": "PENDING"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			resp := decode[handler.ErrorResponse](t, rec)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCustomReminderHandlers(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, http.MethodPost, "/reminders", map[string]any{
		"reminder_at": testNow.Add(2 * time.Hour).Format(time.RFC3339),
		"title":       "Call advisor",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[handler.ReminderResponse](t, rec)
	assert.Equal(t, "CUSTOM", created.Origin)
	assert.Equal(t, "OTHER", created.NotificationType)
	assert.Equal(t, "PENDING", created.Status)

	rec = env.do(t, http.MethodGet, "/reminders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Call advisor", decode[handler.ReminderResponse](t, rec).Title)

	rec = env.do(t, http.MethodPost, "/reminders/"+created.ID+"/disable", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DISABLED", decode[handler.ReminderResponse](t, rec).Status)

	rec = env.do(t, http.MethodGet, "/reminders?origin=CUSTOM", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), decode[handler.RemindersResponse](t, rec).Count)

	rec = env.do(t, http.MethodDelete, "/reminders/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/reminders/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/reminders/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReminderHandlerError(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name          string
		body          map[string]any
		expectedField string
	}{
		{
			name:          "missing title",
			body:          map[string]any{"reminder_at": testNow.Add(time.Hour).Format(time.RFC3339)},
			expectedField: "",
		},
		{
			name: "reminder in the past",
			body: map[string]any{
				"reminder_at": testNow.Add(-time.Hour).Format(time.RFC3339),
				"title":       "Too late",
			},
			expectedField: "reminder_at",
		},
		{
			name: "reference id is not a uuid",
			body: map[string]any{
				"reminder_at":    testNow.Add(time.Hour).Format(time.RFC3339),
				"title":          "Notes",
				"reference_kind": "Assignment",
				"reference_id":   "nope",
			},
			expectedField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/reminders", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[handler.ErrorResponse](t, rec)
			assert.Equal(t, "validation_error", resp.Error)
			assert.Equal(t, tt.expectedField, resp.Field)
		})
	}
}

func TestReminderOwnershipHandler(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, http.MethodPost, "/reminders", map[string]any{
		"reminder_at": testNow.Add(2 * time.Hour).Format(time.RFC3339),
		"title":       "Mine",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[handler.ReminderResponse](t, rec)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+uuid.Must(uuid.NewV7()).String()+"/reminders/"+created.ID, nil)
	other := httptest.NewRecorder()
	env.router.ServeHTTP(other, req)

	assert.Equal(t, http.StatusForbidden, other.Code)
}

func TestScheduleHandlers(t *testing.T) {
	env := setupTestRouter(t)
	assignmentID := env.seedAssignment(t)

	rec := env.do(t, http.MethodPost, "/schedules", map[string]string{"offset": "12,hours"})
	require.Equal(t, http.StatusCreated, rec.Code)

	added := decode[handler.ScheduleResponse](t, rec)
	assert.True(t, added.Enabled)
	assert.False(t, added.Default)
	assert.Empty(t, added.AssignmentID)

	rec = env.do(t, http.MethodPost, "/schedules", map[string]string{"offset": "12,hours"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/schedules", map[string]string{
		"offset":        "3,days",
		"assignment_id": assignmentID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/schedules?assignment_id="+assignmentID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(2), decode[handler.SchedulesResponse](t, rec).Count)

	rec = env.do(t, http.MethodGet, "/schedules?assignment_id="+assignmentID.String()+"&include_global=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), decode[handler.SchedulesResponse](t, rec).Count)

	rec = env.do(t, http.MethodPatch, "/schedules/"+added.ID, map[string]any{"enabled": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[handler.ScheduleResponse](t, rec).Enabled)

	rec = env.do(t, http.MethodDelete, "/schedules/"+added.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/schedules/"+added.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/schedules", map[string]string{"offset": "soon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreferenceAndDeviceHandlers(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, http.MethodGet, "/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[handler.PreferencesResponse](t, rec).PushNotification)

	rec = env.do(t, http.MethodPatch, "/preferences", map[string]any{"push_notification": false})
	require.Equal(t, http.StatusOK, rec.Code)

	prefs := decode[handler.PreferencesResponse](t, rec)
	assert.False(t, prefs.PushNotification)
	assert.True(t, prefs.EmailNotification)

	rec = env.do(t, http.MethodPatch, "/preferences", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/devices", map[string]string{"token": "T1", "platform": "android"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[handler.DeviceResponse](t, rec).Active)

	rec = env.do(t, http.MethodPost, "/devices", map[string]string{"platform": "android"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/devices", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	devices := decode[handler.DevicesResponse](t, rec)
	require.Len(t, devices.Devices, 1)
	assert.Equal(t, "android", devices.Devices[0].Platform)
}

func TestSweepHandler(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/internal/sweep", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[app.SweepOutput](t, rec)
	assert.False(t, out.Skipped)
	assert.Zero(t, out.Claimed)
}

func (e *testEnv) seedNotification(t *testing.T, title string, at time.Time) *domain.Notification {
	t.Helper()

	r, err := domain.NewCustomReminder(e.userID, domain.Reference{}, at.Add(time.Hour), title, "", at)
	require.NoError(t, err)

	n := domain.NewNotificationFromReminder(r, at)
	require.NoError(t, e.store.Repositories().Notifications.CreateMany(context.Background(), []*domain.Notification{n}))

	return n
}

func TestNotificationHandlers(t *testing.T) {
	env := setupTestRouter(t)

	first := env.seedNotification(t, "First", testNow)
	env.seedNotification(t, "Second", testNow.Add(time.Minute))

	rec := env.do(t, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decode[handler.NotificationsResponse](t, rec)
	require.Equal(t, int32(2), listed.Count)
	assert.Equal(t, "Second", listed.Notifications[0].Title)
	assert.False(t, listed.Notifications[0].Read)

	rec = env.do(t, http.MethodGet, "/notifications?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), decode[handler.NotificationsResponse](t, rec).Count)

	rec = env.do(t, http.MethodGet, "/notifications?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[handler.UnreadCountResponse](t, rec).Unread)

	rec = env.do(t, http.MethodPost, "/notifications/"+first.ID().String()+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[handler.AffectedResponse](t, rec).Affected)

	rec = env.do(t, http.MethodPost, "/notifications/not-a-uuid/read", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[handler.UnreadCountResponse](t, rec).Unread)

	rec = env.do(t, http.MethodPost, "/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[handler.AffectedResponse](t, rec).Affected)

	rec = env.do(t, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, n := range decode[handler.NotificationsResponse](t, rec).Notifications {
		assert.True(t, n.Read, n.Title)
	}
}

func TestReminderHistoryHandler(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, http.MethodPost, "/reminders", map[string]any{
		"reminder_at": testNow.Add(2 * time.Hour).Format(time.RFC3339),
		"title":       "Mine",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[handler.ReminderResponse](t, rec)

	reminderID, err := domain.ReminderIDFromString(created.ID)
	require.NoError(t, err)

	require.NoError(t, env.store.Repositories().History.CreateMany(context.Background(), []*domain.SendHistory{
		domain.NewSkippedSend(reminderID, domain.ChannelEmail, domain.ReasonEmailDisabled, nil, testNow),
	}))

	rec = env.do(t, http.MethodGet, "/reminders/"+created.ID+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	history := decode[handler.SendHistoriesResponse](t, rec)
	require.Equal(t, int32(1), history.Count)
	assert.Equal(t, created.ID, history.History[0].ReminderID)
	assert.False(t, history.History[0].CanBeSent)
	assert.Equal(t, domain.ReasonEmailDisabled, history.History[0].Reason)

	rec = env.do(t, http.MethodGet, "/reminders/"+domain.NewReminderID().String()+"/history", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+uuid.Must(uuid.NewV7()).String()+"/reminders/"+created.ID+"/history", nil)
	other := httptest.NewRecorder()
	env.router.ServeHTTP(other, req)

	assert.Equal(t, http.StatusForbidden, other.Code)
}
