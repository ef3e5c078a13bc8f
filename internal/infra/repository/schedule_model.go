package repository

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

// scopeGlobal is the scope key of entries that apply to every assignment;
// scoped entries use the assignment id.
const scopeGlobal = "global"

type ScheduleEntryModel struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID       string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_schedule_entries_slot,priority:1;index:idx_schedule_entries_user"`
	Scope        string    `gorm:"column:scope;type:varchar(64);not null;uniqueIndex:idx_schedule_entries_slot,priority:2"`
	AssignmentID *string   `gorm:"column:assignment_id;type:uuid"`
	Amount       int       `gorm:"column:amount;type:integer;not null;uniqueIndex:idx_schedule_entries_slot,priority:3"`
	Unit         string    `gorm:"column:unit;type:varchar(16);not null;uniqueIndex:idx_schedule_entries_slot,priority:4"`
	Direction    string    `gorm:"column:direction;type:varchar(8);not null;uniqueIndex:idx_schedule_entries_slot,priority:5"`
	Enabled      bool      `gorm:"column:enabled;type:boolean;not null;default:true"`
	IsDefault    bool      `gorm:"column:is_default;type:boolean;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (ScheduleEntryModel) TableName() string {
	return "schedule_entries"
}

func scopeKey(assignmentID domain.AssignmentID) string {
	if assignmentID.IsZero() {
		return scopeGlobal
	}

	return assignmentID.String()
}

func (m *ScheduleEntryModel) ToEntity() (*domain.ScheduleEntry, error) {
	id, err := domain.ScheduleIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	var assignmentID domain.AssignmentID
	if m.AssignmentID != nil {
		assignmentID, err = domain.AssignmentIDFromString(*m.AssignmentID)
		if err != nil {
			return nil, err
		}
	}

	direction, err := domain.NewDirection(m.Direction)
	if err != nil {
		return nil, err
	}

	offset, err := domain.NewOffset(m.Amount, domain.OffsetUnit(m.Unit), direction)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteScheduleEntry(
		id,
		userID,
		assignmentID,
		offset,
		m.Enabled,
		m.IsDefault,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func FromScheduleEntry(e *domain.ScheduleEntry) *ScheduleEntryModel {
	m := &ScheduleEntryModel{
		ID:        e.ID().String(),
		UserID:    e.UserID().String(),
		Scope:     scopeKey(e.AssignmentID()),
		Amount:    e.Offset().Amount(),
		Unit:      string(e.Offset().Unit()),
		Direction: string(e.Offset().Direction()),
		Enabled:   e.IsEnabled(),
		IsDefault: e.IsDefault(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}

	if !e.IsGlobal() {
		id := e.AssignmentID().String()
		m.AssignmentID = &id
	}

	return m
}

func toScheduleEntries(models []ScheduleEntryModel) ([]*domain.ScheduleEntry, error) {
	entries := make([]*domain.ScheduleEntry, 0, len(models))

	for _, m := range models {
		e, err := m.ToEntity()
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, nil
}
