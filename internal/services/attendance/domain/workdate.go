package domain

import (
	"time"

	sched "timeclock/internal/services/schedule/domain"
)

// DefaultGraceMinutes is how far past a graveyard shift's scheduled end
// an event still buckets with the previous day's shift instance
const DefaultGraceMinutes = 360

// WorkDate attributes an event to a reporting date.
//
// Normal shifts bucket to the event's own calendar date. Graveyard
// shifts (clock in after clock out) bucket to the previous day while
// the event's minute of day is at or before clock out plus grace,
// otherwise to the event's own date. All dates are taken in UTC.
func WorkDate(occurredAt time.Time, clockIn, clockOut sched.MinuteOfDay, graceMinutes int) time.Time {
	t := occurredAt.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	if clockIn < clockOut {
		return day
	}

	logMinutes := t.Hour()*60 + t.Minute()
	cutoff := int(clockOut) + graceMinutes
	if logMinutes <= cutoff {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// Apply folds one event into a summary under earliest-in-wins and
// latest-out-wins, then recomputes the status. Events that neither move
// the in boundary earlier nor the out boundary later leave the summary
// unchanged, which makes replays idempotent and order independent.
func Apply(s Summary, e Event) Summary {
	switch e.Type {
	case EventIn:
		if s.InAt == nil || e.OccurredAt.Before(*s.InAt) {
			at := e.OccurredAt
			s.InAt = &at
			s.InEventID = e.ID
		}
	case EventOut:
		if s.OutAt == nil || e.OccurredAt.After(*s.OutAt) {
			at := e.OccurredAt
			s.OutAt = &at
			s.OutEventID = e.ID
		}
	}

	if s.InAt != nil && s.OutAt != nil {
		s.Status = StatusClosed
	} else {
		s.Status = StatusOpen
	}
	return s
}
