package domain

import (
	"time"
)

// ScheduleEntry is one offset in a user's schedule catalog. An entry scoped
// to an assignment only applies to that assignment; otherwise it is global.
type ScheduleEntry struct {
	id           ScheduleID
	userID       UserID
	assignmentID AssignmentID
	offset       Offset
	enabled      bool
	isDefault    bool
	createdAt    time.Time
	updatedAt    time.Time
}

var defaultOffsetSpecs = []string{"24_HOURS", "48_HOURS", "7_DAYS"}

// DefaultScheduleEntries returns the system entries seeded for every user.
func DefaultScheduleEntries(userID UserID) []*ScheduleEntry {
	now := time.Now()
	entries := make([]*ScheduleEntry, 0, len(defaultOffsetSpecs))

	for _, spec := range defaultOffsetSpecs {
		entries = append(entries, &ScheduleEntry{
			id:        NewScheduleID(),
			userID:    userID,
			offset:    MustParseOffset(spec, DirectionBefore),
			enabled:   true,
			isDefault: true,
			createdAt: now,
			updatedAt: now,
		})
	}

	return entries
}

// NewScheduleEntry creates a user entry. A zero assignmentID makes it global.
func NewScheduleEntry(userID UserID, assignmentID AssignmentID, offset Offset) (*ScheduleEntry, error) {
	if offset.IsZero() {
		return nil, ErrInvalidOffset
	}

	now := time.Now()

	return &ScheduleEntry{
		id:           NewScheduleID(),
		userID:       userID,
		assignmentID: assignmentID,
		offset:       offset,
		enabled:      true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstituteScheduleEntry(
	id ScheduleID,
	userID UserID,
	assignmentID AssignmentID,
	offset Offset,
	enabled bool,
	isDefault bool,
	createdAt time.Time,
	updatedAt time.Time,
) *ScheduleEntry {
	return &ScheduleEntry{
		id:           id,
		userID:       userID,
		assignmentID: assignmentID,
		offset:       offset,
		enabled:      enabled,
		isDefault:    isDefault,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *ScheduleEntry) Enable() {
	if s.enabled {
		return
	}

	s.enabled = true
	s.updatedAt = time.Now()
}

func (s *ScheduleEntry) Disable() {
	if !s.enabled {
		return
	}

	s.enabled = false
	s.updatedAt = time.Now()
}

// ChangeOffset replaces the offset of a custom entry. Default entries keep
// their seeded offset.
func (s *ScheduleEntry) ChangeOffset(offset Offset) error {
	if s.isDefault {
		return ErrDefaultScheduleReadOnly
	}

	if offset.IsZero() {
		return ErrInvalidOffset
	}

	s.offset = offset
	s.updatedAt = time.Now()

	return nil
}

func (s *ScheduleEntry) CanDelete() error {
	if s.isDefault {
		return ErrDefaultScheduleNotDeletable
	}

	return nil
}

// AppliesTo reports whether the entry contributes reminders for the assignment.
func (s *ScheduleEntry) AppliesTo(assignmentID AssignmentID) bool {
	return s.IsGlobal() || s.assignmentID.Equals(assignmentID)
}

// SameSlot reports whether both entries collide on the uniqueness key
// (user, offset, direction, scope).
func (s *ScheduleEntry) SameSlot(other *ScheduleEntry) bool {
	return s.userID.Equals(other.userID) &&
		s.offset.Equals(other.offset) &&
		s.assignmentID.Equals(other.assignmentID)
}

func (s *ScheduleEntry) ID() ScheduleID {
	return s.id
}

func (s *ScheduleEntry) UserID() UserID {
	return s.userID
}

func (s *ScheduleEntry) AssignmentID() AssignmentID {
	return s.assignmentID
}

func (s *ScheduleEntry) IsGlobal() bool {
	return s.assignmentID.IsZero()
}

func (s *ScheduleEntry) Offset() Offset {
	return s.offset
}

func (s *ScheduleEntry) IsEnabled() bool {
	return s.enabled
}

func (s *ScheduleEntry) IsDefault() bool {
	return s.isDefault
}

func (s *ScheduleEntry) CreatedAt() time.Time {
	return s.createdAt
}

func (s *ScheduleEntry) UpdatedAt() time.Time {
	return s.updatedAt
}
