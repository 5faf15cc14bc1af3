// Package domain defines the types and interfaces for the schedule service
package domain

import (
	"fmt"
	"time"
)

// MinuteOfDay is a clock position expressed as minutes since midnight, 0..1439
type MinuteOfDay int

// MinutesPerDay is the number of minutes in a calendar day
const MinutesPerDay = 24 * 60

// ParseClock parses "HH:MM" into a MinuteOfDay
func ParseClock(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

// Clock renders the minute as "HH:MM"
func (m MinuteOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Valid reports whether the minute is within a single day
func (m MinuteOfDay) Valid() bool { return m >= 0 && m < MinutesPerDay }

// Shift is a scheduled working window. ClockIn > ClockOut means the shift
// crosses midnight (graveyard shift)
type Shift struct {
	ID        string // uuid
	Name      string
	ClockIn   MinuteOfDay
	ClockOut  MinuteOfDay
	CreatedAt time.Time
}

// Overnight reports whether the shift spans midnight
func (s Shift) Overnight() bool { return s.ClockIn > s.ClockOut }
