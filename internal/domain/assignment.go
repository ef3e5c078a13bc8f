package domain

import (
	"fmt"
	"time"
)

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "PENDING"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusCompleted  AssignmentStatus = "COMPLETED"
	AssignmentStatusCancelled  AssignmentStatus = "CANCELLED"
)

func NewAssignmentStatus(s string) (AssignmentStatus, error) {
	switch AssignmentStatus(s) {
	case AssignmentStatusPending, AssignmentStatusInProgress, AssignmentStatusCompleted, AssignmentStatusCancelled:
		return AssignmentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
}

// Assignment is a read-only snapshot of an assignment owned elsewhere.
type Assignment struct {
	id                AssignmentID
	userID            UserID
	title             string
	dueDate           *time.Time
	status            AssignmentStatus
	reminderEnabled   bool
	emailNotification bool
	pushNotification  bool
}

func ReconstituteAssignment(
	id AssignmentID,
	userID UserID,
	title string,
	dueDate *time.Time,
	status AssignmentStatus,
	reminderEnabled bool,
	emailNotification bool,
	pushNotification bool,
) *Assignment {
	return &Assignment{
		id:                id,
		userID:            userID,
		title:             title,
		dueDate:           dueDate,
		status:            status,
		reminderEnabled:   reminderEnabled,
		emailNotification: emailNotification,
		pushNotification:  pushNotification,
	}
}

func (a *Assignment) ID() AssignmentID {
	return a.id
}

func (a *Assignment) UserID() UserID {
	return a.userID
}

func (a *Assignment) Title() string {
	return a.title
}

// DueDate returns the due date and whether one is set.
func (a *Assignment) DueDate() (time.Time, bool) {
	if a.dueDate == nil {
		return time.Time{}, false
	}

	return *a.dueDate, true
}

func (a *Assignment) Status() AssignmentStatus {
	return a.status
}

func (a *Assignment) IsClosed() bool {
	return a.status == AssignmentStatusCompleted || a.status == AssignmentStatusCancelled
}

// ClosedReason is the disable reason for reminders of a closed assignment.
func (a *Assignment) ClosedReason() string {
	if a.status == AssignmentStatusCancelled {
		return ReasonAssignmentCancelled
	}

	return ReasonAssignmentCompleted
}

func (a *Assignment) ReminderEnabled() bool {
	return a.reminderEnabled
}

func (a *Assignment) AllowsChannel(ch Channel) bool {
	switch ch {
	case ChannelEmail:
		return a.emailNotification
	case ChannelPush:
		return a.pushNotification
	default:
		return false
	}
}
