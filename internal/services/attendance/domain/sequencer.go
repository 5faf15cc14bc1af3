package domain

import perr "timeclock/internal/platform/errors"

// Admit decides whether an event of type next may follow the most recent
// stored event for the same employee. The check is global across calendar
// dates so an overnight out can close the previous evening's in. A nil
// last means the employee has no events yet.
func Admit(last *Event, next EventType) error {
	switch next {
	case EventIn:
		if last != nil && last.Type == EventIn {
			return ErrUnmatchedIn
		}
	case EventOut:
		if last == nil || last.Type == EventOut {
			return ErrNoPriorIn
		}
	default:
		return perr.InvalidArgf("unknown event type %q", string(next))
	}
	return nil
}
