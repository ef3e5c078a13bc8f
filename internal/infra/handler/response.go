package handler

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
)

type ReminderResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	ReferenceKind    string     `json:"reference_kind,omitempty"`
	ReferenceID      string     `json:"reference_id,omitempty"`
	ReminderAt       time.Time  `json:"reminder_at"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType string     `json:"notification_type"`
	Origin           string     `json:"origin"`
	ScheduleID       string     `json:"schedule_id,omitempty"`
	Status           string     `json:"status"`
	DisabledReason   string     `json:"disabled_reason,omitempty"`
	DisabledAt       *time.Time `json:"disabled_at,omitempty"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type RemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Count     int32              `json:"count"`
}

type ReconcileResponse struct {
	AssignmentID string `json:"assignment_id"`
	Deleted      int64  `json:"deleted"`
	Created      int    `json:"created"`
	Disabled     int64  `json:"disabled"`
	SkipReason   string `json:"skip_reason,omitempty"`
}

type ReconcileUserResponse struct {
	Assignments []ReconcileResponse `json:"assignments"`
}

type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

type ScheduleResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	Offset       string    `json:"offset"`
	Direction    string    `json:"direction"`
	Enabled      bool      `json:"enabled"`
	Default      bool      `json:"default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Count     int32              `json:"count"`
}

type PreferencesResponse struct {
	UserID                 string    `json:"user_id"`
	AssignmentReminder     bool      `json:"assignment_reminder"`
	PushNotification       bool      `json:"push_notification"`
	EmailNotification      bool      `json:"email_notification"`
	AssignmentNotification bool      `json:"assignment_notification"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type DeviceResponse struct {
	Token       string    `json:"token"`
	Platform    string    `json:"platform"`
	DeviceID    string    `json:"device_id,omitempty"`
	DeviceModel string    `json:"device_model,omitempty"`
	Active      bool      `json:"active"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DevicesResponse struct {
	Devices []DeviceResponse `json:"devices"`
	Count   int32            `json:"count"`
}

type NotificationResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Type          string         `json:"type"`
	ReferenceKind string         `json:"reference_kind,omitempty"`
	ReferenceID   string         `json:"reference_id,omitempty"`
	Title         string         `json:"title"`
	Message       string         `json:"message"`
	Data          map[string]any `json:"data,omitempty"`
	Read          bool           `json:"is_read"`
	CreatedAt     time.Time      `json:"created_at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Count         int32                  `json:"count"`
}

type UnreadCountResponse struct {
	UserID string `json:"user_id"`
	Unread int64  `json:"unread"`
}

type SendHistoryResponse struct {
	ID         string         `json:"id"`
	ReminderID string         `json:"reminder_id"`
	Channel    string         `json:"channel"`
	CanBeSent  bool           `json:"can_be_sent"`
	Reason     string         `json:"reason"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type SendHistoriesResponse struct {
	History []SendHistoryResponse `json:"history"`
	Count   int32                 `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromReminderDTO(output app.ReminderOutput) ReminderResponse {
	return ReminderResponse{
		ID:               output.ID,
		UserID:           output.UserID,
		ReferenceKind:    output.ReferenceKind,
		ReferenceID:      output.ReferenceID,
		ReminderAt:       output.ReminderAt,
		Title:            output.Title,
		Message:          output.Message,
		NotificationType: output.NotificationType,
		Origin:           output.Origin,
		ScheduleID:       output.ScheduleID,
		Status:           output.Status,
		DisabledReason:   output.DisabledReason,
		DisabledAt:       output.DisabledAt,
		SentAt:           output.SentAt,
		CreatedAt:        output.CreatedAt,
		UpdatedAt:        output.UpdatedAt,
	}
}

func FromRemindersDTO(output app.RemindersOutput) RemindersResponse {
	reminders := make([]ReminderResponse, 0, len(output.Reminders))
	for _, r := range output.Reminders {
		reminders = append(reminders, FromReminderDTO(r))
	}

	return RemindersResponse{
		Reminders: reminders,
		Count:     output.Count,
	}
}

func FromReconcileDTO(output app.ReconcileOutput) ReconcileResponse {
	return ReconcileResponse{
		AssignmentID: output.AssignmentID,
		Deleted:      output.Deleted,
		Created:      output.Created,
		Disabled:     output.Disabled,
		SkipReason:   output.SkipReason,
	}
}

func FromReconcileUserDTO(output app.ReconcileUserOutput) ReconcileUserResponse {
	assignments := make([]ReconcileResponse, 0, len(output.Assignments))
	for _, a := range output.Assignments {
		assignments = append(assignments, FromReconcileDTO(a))
	}

	return ReconcileUserResponse{
		Assignments: assignments,
	}
}

func FromScheduleDTO(output app.ScheduleOutput) ScheduleResponse {
	return ScheduleResponse{
		ID:           output.ID,
		UserID:       output.UserID,
		AssignmentID: output.AssignmentID,
		Offset:       output.Offset,
		Direction:    output.Direction,
		Enabled:      output.Enabled,
		Default:      output.Default,
		CreatedAt:    output.CreatedAt,
		UpdatedAt:    output.UpdatedAt,
	}
}

func FromSchedulesDTO(output app.SchedulesOutput) SchedulesResponse {
	schedules := make([]ScheduleResponse, 0, len(output.Schedules))
	for _, s := range output.Schedules {
		schedules = append(schedules, FromScheduleDTO(s))
	}

	return SchedulesResponse{
		Schedules: schedules,
		Count:     output.Count,
	}
}

func FromPreferencesDTO(output app.PreferencesOutput) PreferencesResponse {
	return PreferencesResponse{
		UserID:                 output.UserID,
		AssignmentReminder:     output.AssignmentReminder,
		PushNotification:       output.PushNotification,
		EmailNotification:      output.EmailNotification,
		AssignmentNotification: output.AssignmentNotification,
		UpdatedAt:              output.UpdatedAt,
	}
}

func FromDeviceDTO(output app.DeviceOutput) DeviceResponse {
	return DeviceResponse{
		Token:       output.Token,
		Platform:    output.Platform,
		DeviceID:    output.DeviceID,
		DeviceModel: output.DeviceModel,
		Active:      output.Active,
		UpdatedAt:   output.UpdatedAt,
	}
}

func FromDevicesDTO(output app.DevicesOutput) DevicesResponse {
	devices := make([]DeviceResponse, 0, len(output.Devices))
	for _, d := range output.Devices {
		devices = append(devices, FromDeviceDTO(d))
	}

	return DevicesResponse{
		Devices: devices,
		Count:   output.Count,
	}
}

func FromNotificationsDTO(output app.NotificationsOutput) NotificationsResponse {
	notifications := make([]NotificationResponse, 0, len(output.Notifications))
	for _, n := range output.Notifications {
		notifications = append(notifications, NotificationResponse{
			ID:            n.ID,
			UserID:        n.UserID,
			Type:          n.Type,
			ReferenceKind: n.ReferenceKind,
			ReferenceID:   n.ReferenceID,
			Title:         n.Title,
			Message:       n.Message,
			Data:          n.Data,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		})
	}

	return NotificationsResponse{
		Notifications: notifications,
		Count:         output.Count,
	}
}

func FromSendHistoriesDTO(output app.SendHistoriesOutput) SendHistoriesResponse {
	history := make([]SendHistoryResponse, 0, len(output.History))
	for _, h := range output.History {
		history = append(history, SendHistoryResponse{
			ID:         h.ID,
			ReminderID: h.ReminderID,
			Channel:    h.Channel,
			CanBeSent:  h.CanBeSent,
			Reason:     h.Reason,
			Payload:    h.Payload,
			CreatedAt:  h.CreatedAt,
		})
	}

	return SendHistoriesResponse{
		History: history,
		Count:   output.Count,
	}
}
