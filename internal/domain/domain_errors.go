package domain

import "errors"

var (
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAssignmentNotFound = errors.New("assignment not found")

	ErrInvalidOffset           = errors.New("invalid schedule offset")
	ErrInvalidDirection        = errors.New("invalid schedule direction")
	ErrInvalidPlatform         = errors.New("invalid device platform")
	ErrInvalidReference        = errors.New("invalid reminder reference")
	ErrInvalidNotificationType = errors.New("invalid notification type")
	ErrInvalidReminderStatus   = errors.New("invalid reminder status")
	ErrInvalidOrigin           = errors.New("invalid reminder origin")
	ErrInvalidChannel          = errors.New("invalid channel")

	ErrEmptyTitle         = errors.New("reminder title cannot be empty")
	ErrPastReminderTime   = errors.New("reminder time cannot be in the past")
	ErrReminderTerminal   = errors.New("reminder is already sent or disabled")
	ErrReminderNotClaimed = errors.New("reminder is not claimed")
	ErrLeaseActive        = errors.New("reminder lease is still active")

	ErrDefaultScheduleNotDeletable = errors.New("default schedules can only be disabled")
	ErrDefaultScheduleReadOnly     = errors.New("default schedule offsets cannot be changed")
	ErrScheduleAlreadyExists       = errors.New("schedule already exists")
)
