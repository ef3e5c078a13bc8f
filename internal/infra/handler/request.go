package handler

import "time"

type CreateReminderRequest struct {
	ReminderAt    time.Time `json:"reminder_at" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Message       string    `json:"message"`
	ReferenceKind string    `json:"reference_kind"`
	ReferenceID   string    `json:"reference_id" binding:"omitempty,uuid"`
}

type ListRemindersRequest struct {
	Origin string `form:"origin"`
	Status string `form:"status"`
}

type AssignmentClosedRequest struct {
	Status string `json:"status" binding:"required,oneof=COMPLETED CANCELLED"`
}

type ListSchedulesRequest struct {
	AssignmentID  string `form:"assignment_id" binding:"omitempty,uuid"`
	IncludeGlobal *bool  `form:"include_global"`
}

type AddScheduleRequest struct {
	AssignmentID string `json:"assignment_id" binding:"omitempty,uuid"`
	Offset       string `json:"offset" binding:"required"`
	Direction    string `json:"direction"`
}

type UpdateScheduleRequest struct {
	Enabled   *bool   `json:"enabled"`
	Offset    *string `json:"offset"`
	Direction *string `json:"direction"`
}

type UpdatePreferencesRequest struct {
	AssignmentReminder     *bool `json:"assignment_reminder"`
	PushNotification       *bool `json:"push_notification"`
	EmailNotification      *bool `json:"email_notification"`
	AssignmentNotification *bool `json:"assignment_notification"`
}

type RegisterDeviceRequest struct {
	Token       string `json:"token" binding:"required"`
	Platform    string `json:"platform"`
	DeviceID    string `json:"device_id"`
	DeviceModel string `json:"device_model"`
}

type ListNotificationsRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}
