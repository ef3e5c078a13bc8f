package app

type SeedDefaultSchedulesInput struct {
	UserID string
}

type ListSchedulesInput struct {
	UserID        string
	AssignmentID  string
	IncludeGlobal bool
}

// AddScheduleInput adds an offset to the catalog. An empty AssignmentID
// makes the entry global.
type AddScheduleInput struct {
	UserID       string
	AssignmentID string
	Offset       string
	Direction    string
}

type UpdateScheduleInput struct {
	UserID    string
	ID        string
	Enabled   *bool
	Offset    *string
	Direction *string
}

type RemoveScheduleInput struct {
	UserID string
	ID     string
}
