package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID       = errors.New("invalid user ID: must be valid UUIDv7")
	ErrInvalidAssignmentID = errors.New("invalid assignment ID: must be valid UUID")
	ErrInvalidReminderID   = errors.New("invalid reminder ID")
	ErrInvalidScheduleID   = errors.New("invalid schedule ID")
)

// UserID identifies the owner of reminders, schedules and device tokens.
// Users are created upstream with time-ordered (v7) identifiers.
type UserID struct {
	value uuid.UUID
}

func UserIDFromString(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, ErrInvalidUserID
	}

	return UserIDFromUUID(id)
}

func UserIDFromUUID(id uuid.UUID) (UserID, error) {
	if id.Version() != 7 {
		return UserID{}, ErrInvalidUserID
	}

	return UserID{value: id}, nil
}

func (u UserID) String() string {
	return u.value.String()
}

func (u UserID) UUID() uuid.UUID {
	return u.value
}

func (u UserID) IsZero() bool {
	return u.value == uuid.Nil
}

func (u UserID) Equals(other UserID) bool {
	return u.value == other.value
}

// AssignmentID is a weak reference to an assignment owned by the assignment service.
type AssignmentID struct {
	value uuid.UUID
}

func AssignmentIDFromString(s string) (AssignmentID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return AssignmentID{}, ErrInvalidAssignmentID
	}

	return AssignmentID{value: id}, nil
}

func AssignmentIDFromUUID(id uuid.UUID) (AssignmentID, error) {
	if id == uuid.Nil {
		return AssignmentID{}, ErrInvalidAssignmentID
	}

	return AssignmentID{value: id}, nil
}

func (a AssignmentID) String() string {
	return a.value.String()
}

func (a AssignmentID) UUID() uuid.UUID {
	return a.value
}

func (a AssignmentID) IsZero() bool {
	return a.value == uuid.Nil
}

func (a AssignmentID) Equals(other AssignmentID) bool {
	return a.value == other.value
}

type ReminderID struct {
	value uuid.UUID
}

func NewReminderID() ReminderID {
	return ReminderID{value: uuid.Must(uuid.NewV7())}
}

func ReminderIDFromString(s string) (ReminderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ReminderID{}, ErrInvalidReminderID
	}

	return ReminderID{value: id}, nil
}

func ReminderIDFromUUID(id uuid.UUID) ReminderID {
	return ReminderID{value: id}
}

func (r ReminderID) String() string {
	return r.value.String()
}

func (r ReminderID) UUID() uuid.UUID {
	return r.value
}

func (r ReminderID) IsZero() bool {
	return r.value == uuid.Nil
}

type ScheduleID struct {
	value uuid.UUID
}

func NewScheduleID() ScheduleID {
	return ScheduleID{value: uuid.Must(uuid.NewV7())}
}

func ScheduleIDFromString(s string) (ScheduleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ScheduleID{}, ErrInvalidScheduleID
	}

	return ScheduleID{value: id}, nil
}

func ScheduleIDFromUUID(id uuid.UUID) ScheduleID {
	return ScheduleID{value: id}
}

func (s ScheduleID) String() string {
	return s.value.String()
}

func (s ScheduleID) UUID() uuid.UUID {
	return s.value
}

func (s ScheduleID) IsZero() bool {
	return s.value == uuid.Nil
}
