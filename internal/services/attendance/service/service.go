// Package service provides the attendance service implementation
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/modkit/repokit"
	perr "timeclock/internal/platform/errors"
	"timeclock/internal/platform/logger"
	"timeclock/internal/services/attendance/domain"
	"timeclock/internal/services/attendance/repo"
	identdom "timeclock/internal/services/ident/domain"
	sched "timeclock/internal/services/schedule/domain"
)

// Config carries reconciliation tunables
type Config struct {
	// GraceMinutes extends a graveyard shift's end for bucketing
	GraceMinutes int
}

// Service wires TxRunner + Binder into the attendance operations
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config

	Shifts    sched.ReaderPort
	Matcher   identdom.MatcherPort
	Directory identdom.DirectoryPort
}

// New constructs the attendance service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	cfg Config,
	shifts sched.ReaderPort,
	matcher identdom.MatcherPort,
	directory identdom.DirectoryPort,
) *Service {
	if db == nil {
		panic("attendance.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("attendance.Service requires a non nil Repo binder")
	}
	if shifts == nil {
		panic("attendance.Service requires a schedule reader")
	}
	if cfg.GraceMinutes <= 0 {
		cfg.GraceMinutes = domain.DefaultGraceMinutes
	}
	return &Service{
		DB: db, Binder: binder, Cfg: cfg,
		Shifts: shifts, Matcher: matcher, Directory: directory,
	}
}

// ClockResult is the outcome of a descriptor driven capture
type ClockResult struct {
	Matched  bool
	Employee identdom.Employee
	Distance float64
	Event    *domain.Event
	Summary  *domain.Summary
}

// Clock resolves a probe descriptor to an employee and records the
// event. A failed match is a normal outcome, not an error, the caller
// decides what to show the person at the door.
func (s *Service) Clock(
	ctx context.Context,
	probe identdom.Descriptor,
	threshold float64,
	typ domain.EventType,
	source string,
) (ClockResult, error) {
	if s.Matcher == nil || s.Directory == nil {
		return ClockResult{}, perr.Internalf("capture requires the ident module")
	}
	m, err := s.Matcher.FindBestMatch(ctx, probe, threshold)
	if err != nil {
		return ClockResult{}, err
	}
	if !m.Matched {
		return ClockResult{}, nil
	}

	emp, err := s.Directory.GetEmployee(ctx, m.EmployeeID)
	if err != nil {
		return ClockResult{}, err
	}

	evt, sum, err := s.Record(ctx, emp.ID, typ, time.Time{}, source)
	if err != nil {
		return ClockResult{}, err
	}
	return ClockResult{
		Matched:  true,
		Employee: emp,
		Distance: m.Distance,
		Event:    &evt,
		Summary:  &sum,
	}, nil
}

// Record implements domain.RecorderPort
//
// Admission, the event append and the summary fold run in one
// transaction under a per-employee advisory lock, so a rejected event
// leaves no trace and two concurrent captures cannot both observe the
// same last event.
func (s *Service) Record(
	ctx context.Context,
	employeeID string,
	typ domain.EventType,
	occurredAt time.Time,
	source string,
) (domain.Event, domain.Summary, error) {
	if employeeID == "" {
		return domain.Event{}, domain.Summary{}, perr.InvalidArgf("employee id is required")
	}
	if !typ.Valid() {
		return domain.Event{}, domain.Summary{}, perr.InvalidArgf("event type must be in or out")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	occurredAt = occurredAt.UTC()

	emp, err := s.Directory.GetEmployee(ctx, employeeID)
	if err != nil {
		return domain.Event{}, domain.Summary{}, err
	}
	if emp.ShiftID == "" {
		return domain.Event{}, domain.Summary{}, perr.InvalidArgf(
			"employee %s has no shift assigned", employeeID,
		)
	}
	shift, err := s.Shifts.GetShift(ctx, emp.ShiftID)
	if err != nil {
		return domain.Event{}, domain.Summary{}, err
	}

	evt := domain.Event{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		ShiftID:    shift.ID,
		Type:       typ,
		OccurredAt: occurredAt,
		Source:     source,
		CreatedAt:  time.Now().UTC(),
	}

	var sum domain.Summary
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		if err := r.LockEmployee(ctx, emp.ID); err != nil {
			return err
		}
		last, err := r.LastEvent(ctx, emp.ID)
		if err != nil {
			return err
		}
		if err := domain.Admit(last, typ); err != nil {
			return err
		}
		if err := r.InsertEvent(ctx, evt); err != nil {
			return err
		}
		sum, err = s.reconcileBound(ctx, r, evt, shift)
		return err
	})
	if err != nil {
		return domain.Event{}, domain.Summary{}, err
	}
	return evt, sum, nil
}

// Reconcile implements domain.ReconcilerPort for a single event
func (s *Service) Reconcile(ctx context.Context, e domain.Event) (domain.Summary, error) {
	if e.ShiftID == "" {
		return domain.Summary{}, perr.InvalidArgf("event %s has no shift", e.ID)
	}
	shift, err := s.Shifts.GetShift(ctx, e.ShiftID)
	if err != nil {
		return domain.Summary{}, err
	}

	var sum domain.Summary
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		sum, err = s.reconcileBound(ctx, s.Binder.Bind(q), e, shift)
		return err
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return sum, nil
}

// reconcileBound folds one event into its bucket's summary under the
// bucket's row lock. The caller owns the transaction.
func (s *Service) reconcileBound(
	ctx context.Context,
	r repo.Storage,
	e domain.Event,
	shift sched.Shift,
) (domain.Summary, error) {
	b := domain.Bucket{
		EmployeeID: e.EmployeeID,
		ShiftID:    e.ShiftID,
		WorkDate:   domain.WorkDate(e.OccurredAt, shift.ClockIn, shift.ClockOut, s.Cfg.GraceMinutes),
	}
	if err := r.EnsureSummary(ctx, b); err != nil {
		return domain.Summary{}, err
	}
	sum, err := r.SummaryForUpdate(ctx, b)
	if err != nil {
		return domain.Summary{}, err
	}
	next := domain.Apply(sum, e)
	if err := r.UpdateSummary(ctx, next); err != nil {
		return domain.Summary{}, err
	}
	return next, nil
}

// RebuildRange implements domain.ReconcilerPort
//
// Events are replayed in ascending occurred_at order and each event
// reconciles in its own transaction. A bad historical row is logged
// and skipped, the batch keeps going.
func (s *Service) RebuildRange(ctx context.Context, from, to time.Time) (domain.RebuildReport, error) {
	l := logger.C(ctx).With().Str("mod", "attendance").
		Time("from", from.UTC()).Time("to", to.UTC()).Logger()
	l.Info().Msg("rebuild: start")

	if !from.Before(to) {
		return domain.RebuildReport{}, perr.InvalidArgf("from must be before to")
	}

	events, err := s.Binder.Bind(s.DB).ListEventsAsc(ctx, from.UTC(), to.UTC())
	if err != nil {
		return domain.RebuildReport{}, err
	}

	var report domain.RebuildReport
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if e.ShiftID == "" {
			l.Warn().Str("event_id", e.ID).Msg("rebuild: event has no shift, skipping")
			report.Skipped++
			continue
		}
		if _, err := s.Reconcile(ctx, e); err != nil {
			l.Warn().Err(err).Str("event_id", e.ID).Msg("rebuild: reconcile failed, skipping")
			report.Skipped++
			continue
		}
		report.Replayed++
	}

	l.Info().Int("replayed", report.Replayed).Int("skipped", report.Skipped).Msg("rebuild: done")
	return report, nil
}

// ListEvents implements domain.QueryPort
func (s *Service) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	return s.Binder.Bind(s.DB).ListEvents(ctx, f)
}

// ListSummaries implements domain.QueryPort
func (s *Service) ListSummaries(ctx context.Context, f domain.SummaryFilter) ([]domain.Summary, error) {
	return s.Binder.Bind(s.DB).ListSummaries(ctx, f)
}
