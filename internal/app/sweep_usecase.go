package app

import (
	"context"
	"time"
)

type SweepConfig struct {
	BatchSize    int
	Lease        time.Duration
	EmailEnabled bool
	PushEnabled  bool
	Concurrency  int
}

type SweepOutput struct {
	Skipped     bool  `json:"skipped"`
	Claimed     int   `json:"claimed"`
	Sent        int   `json:"sent"`
	Disabled    int   `json:"disabled"`
	Released    int   `json:"released"`
	HistoryRows int   `json:"history_rows"`
	Deactivated int64 `json:"deactivated"`
}

type SweepUseCase interface {
	// Sweep claims due reminders, filters and dispatches them, and records
	// the outcome. Overlapping calls in one process return Skipped.
	Sweep(ctx context.Context) (SweepOutput, error)
}
