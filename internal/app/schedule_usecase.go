package app

import "context"

type ScheduleUseCase interface {
	SeedDefaults(ctx context.Context, input SeedDefaultSchedulesInput) (SchedulesOutput, error)
	ListSchedules(ctx context.Context, input ListSchedulesInput) (SchedulesOutput, error)
	AddSchedule(ctx context.Context, input AddScheduleInput) (ScheduleOutput, error)
	UpdateSchedule(ctx context.Context, input UpdateScheduleInput) (ScheduleOutput, error)
	RemoveSchedule(ctx context.Context, input RemoveScheduleInput) error
}
