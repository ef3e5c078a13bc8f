package app

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type ScheduleOutput struct {
	ID           string
	UserID       string
	AssignmentID string
	Offset       string
	Amount       int
	Unit         string
	Direction    string
	Enabled      bool
	Default      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SchedulesOutput struct {
	Schedules []ScheduleOutput
	Count     int32
}

func FromScheduleEntry(e *domain.ScheduleEntry) ScheduleOutput {
	out := ScheduleOutput{
		ID:        e.ID().String(),
		UserID:    e.UserID().String(),
		Offset:    e.Offset().Spec(),
		Amount:    e.Offset().Amount(),
		Unit:      string(e.Offset().Unit()),
		Direction: string(e.Offset().Direction()),
		Enabled:   e.IsEnabled(),
		Default:   e.IsDefault(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}

	if !e.IsGlobal() {
		out.AssignmentID = e.AssignmentID().String()
	}

	return out
}

func FromScheduleEntries(entries []*domain.ScheduleEntry) SchedulesOutput {
	outputs := make([]ScheduleOutput, 0, len(entries))
	for _, e := range entries {
		outputs = append(outputs, FromScheduleEntry(e))
	}

	return SchedulesOutput{
		Schedules: outputs,
		Count:     int32(len(outputs)), // #nosec G115
	}
}
