package domain

import perr "timeclock/internal/platform/errors"

// Sequencing rejections carry a stable machine readable field on the wire
var (
	// ErrNoPriorIn rejects an out event with no open clock-in to close
	ErrNoPriorIn = perr.WithField(perr.Conflictf("no open clock-in to close"), "no_prior_in")

	// ErrUnmatchedIn rejects an in event while a clock-in is still open
	ErrUnmatchedIn = perr.WithField(perr.Conflictf("an open clock-in already exists, clock out first"), "unmatched_in")
)
