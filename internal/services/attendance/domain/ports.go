package domain

import (
	"context"
	"time"
)

// RecorderPort admits and stores clock events, then reconciles them
type RecorderPort interface {
	// Record runs the full capture pipeline for a known employee
	// a zero occurredAt means the server assigns the current time
	Record(ctx context.Context, employeeID string, typ EventType, occurredAt time.Time, source string) (Event, Summary, error)
}

// ReconcilerPort folds events into daily summaries
type ReconcilerPort interface {
	Reconcile(ctx context.Context, e Event) (Summary, error)
	RebuildRange(ctx context.Context, from, to time.Time) (RebuildReport, error)
}

// QueryPort reads events and summaries back out
type QueryPort interface {
	ListEvents(ctx context.Context, f EventFilter) ([]Event, error)
	ListSummaries(ctx context.Context, f SummaryFilter) ([]Summary, error)
}

// EventFilter narrows an event listing
type EventFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
	Limit      int
}

// SummaryFilter narrows a summary listing by bucket fields
type SummaryFilter struct {
	EmployeeID string
	ShiftID    string
	From       time.Time
	To         time.Time
}

// RebuildReport counts the outcome of a range replay
type RebuildReport struct {
	Replayed int
	Skipped  int
}
