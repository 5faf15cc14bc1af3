// Package domain holds attendance types shared across layers
package domain

import "time"

// EventType is the direction of a clock event
type EventType string

// Clock event directions
const (
	EventIn  EventType = "in"
	EventOut EventType = "out"
)

// Valid reports whether t is a known event type
func (t EventType) Valid() bool { return t == EventIn || t == EventOut }

// Event is an immutable clock record
// ShiftID may be empty at capture but must be set before reconciliation
type Event struct {
	ID         string
	EmployeeID string
	ShiftID    string
	Type       EventType
	OccurredAt time.Time
	Source     string
	CreatedAt  time.Time
}

// SummaryStatus tracks whether a summary still waits for its out event
type SummaryStatus string

// Summary statuses
const (
	StatusOpen   SummaryStatus = "open"
	StatusClosed SummaryStatus = "closed"
)

// Summary is the mutable daily aggregate for one bucket
// exactly one row may exist per (employee, shift, work date)
type Summary struct {
	ID         string
	EmployeeID string
	ShiftID    string
	WorkDate   time.Time
	InEventID  string
	OutEventID string
	InAt       *time.Time
	OutAt      *time.Time
	Status     SummaryStatus
	UpdatedAt  time.Time
}

// Bucket identifies a single summary row
type Bucket struct {
	EmployeeID string
	ShiftID    string
	WorkDate   time.Time
}

// Bucket returns the identifying tuple of the summary
func (s Summary) Bucket() Bucket {
	return Bucket{EmployeeID: s.EmployeeID, ShiftID: s.ShiftID, WorkDate: s.WorkDate}
}
