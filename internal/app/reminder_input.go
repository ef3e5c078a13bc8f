package app

import "time"

type ReconcileInput struct {
	UserID       string
	AssignmentID string
}

type ReconcileUserInput struct {
	UserID string
}

type DisableAssignmentRemindersInput struct {
	UserID       string
	AssignmentID string
	Reason       string
}

type PurgeAssignmentRemindersInput struct {
	UserID       string
	AssignmentID string
}

type CreateCustomReminderInput struct {
	UserID        string
	ReminderAt    time.Time
	Title         string
	Message       string
	ReferenceKind string
	ReferenceID   string
}

type ListRemindersInput struct {
	UserID string
	Origin string
	Status string
}

type ListAssignmentRemindersInput struct {
	UserID       string
	AssignmentID string
	Status       string
}

type ReminderByIDInput struct {
	UserID string
	ID     string
}
