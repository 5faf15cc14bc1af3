// Package repo provides the postgres repository for events and summaries
package repo

import (
	"context"
	"strings"
	"time"

	"timeclock/internal/modkit/repokit"
	perr "timeclock/internal/platform/errors"
	ptime "timeclock/internal/platform/time"
	"timeclock/internal/services/attendance/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the attendance repository
//
// LockEmployee and SummaryForUpdate only make sense inside a transaction,
// callers bind the repo to the transaction's Queryer first
type Storage interface {
	LockEmployee(ctx context.Context, employeeID string) error
	LastEvent(ctx context.Context, employeeID string) (*domain.Event, error)
	InsertEvent(ctx context.Context, e domain.Event) error
	ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)
	ListEventsAsc(ctx context.Context, from, to time.Time) ([]domain.Event, error)

	EnsureSummary(ctx context.Context, b domain.Bucket) error
	SummaryForUpdate(ctx context.Context, b domain.Bucket) (domain.Summary, error)
	UpdateSummary(ctx context.Context, s domain.Summary) error
	ListSummaries(ctx context.Context, f domain.SummaryFilter) ([]domain.Summary, error)

	EnsureSchema(ctx context.Context) error
}

type pg struct{ q repokit.Queryer }

// LockEmployee serializes concurrent captures for one employee within
// the surrounding transaction so two writers cannot both observe the
// same last event
func (s *pg) LockEmployee(ctx context.Context, employeeID string) error {
	_, err := s.q.Exec(ctx, `
		SELECT pg_advisory_xact_lock(hashtextextended($1, 0))
	`, employeeID)
	return perr.WrapIf(err, perr.ErrorCodeDB, "lock employee")
}

func (s *pg) LastEvent(ctx context.Context, employeeID string) (*domain.Event, error) {
	var e domain.Event
	var shiftID *string
	err := s.q.QueryRow(ctx, `
		SELECT id::text, employee_id::text, shift_id::text, event_type, occurred_at, source, created_at
		  FROM attendance_events
		 WHERE employee_id = $1::uuid
		 ORDER BY occurred_at DESC, created_at DESC
		 LIMIT 1
	`, employeeID).Scan(&e.ID, &e.EmployeeID, &shiftID, &e.Type, &e.OccurredAt, &e.Source, &e.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return nil, nil
		}
		return nil, perr.FromPostgres(err, "last event")
	}
	if shiftID != nil {
		e.ShiftID = *shiftID
	}
	return &e, nil
}

func (s *pg) InsertEvent(ctx context.Context, e domain.Event) error {
	var shiftID *string
	if e.ShiftID != "" {
		shiftID = &e.ShiftID
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO attendance_events (id, employee_id, shift_id, event_type, occurred_at, source, created_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7)
	`, e.ID, e.EmployeeID, shiftID, string(e.Type), e.OccurredAt, e.Source, e.CreatedAt)
	return perr.FromPostgresWithField(err, "insert event")
}

func (s *pg) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	rows, err := s.q.Query(ctx, `
		SELECT id::text, employee_id::text, shift_id::text, event_type, occurred_at, source, created_at
		  FROM attendance_events
		 WHERE ($1 = '' OR employee_id = $1::uuid)
		   AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		   AND ($3::timestamptz IS NULL OR occurred_at <  $3)
		 ORDER BY occurred_at DESC, created_at DESC
		 LIMIT $4
	`, f.EmployeeID, ptime.Ptr(f.From), ptime.Ptr(f.To), limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list events")
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListEventsAsc returns every event in [from, to) in replay order
func (s *pg) ListEventsAsc(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, employee_id::text, shift_id::text, event_type, occurred_at, source, created_at
		  FROM attendance_events
		 WHERE occurred_at >= $1 AND occurred_at < $2
		 ORDER BY occurred_at ASC, created_at ASC
	`, from, to)
	if err != nil {
		return nil, perr.FromPostgres(err, "list events for replay")
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows repokit.Rows) ([]domain.Event, error) {
	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		var shiftID *string
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &shiftID, &e.Type, &e.OccurredAt, &e.Source, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		if shiftID != nil {
			e.ShiftID = *shiftID
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EnsureSummary creates the bucket's row when missing, relying on the
// unique key to make concurrent creators converge on a single row
func (s *pg) EnsureSummary(ctx context.Context, b domain.Bucket) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO attendance_summaries (id, employee_id, shift_id, work_date, status, updated_at)
		VALUES (gen_random_uuid(), $1::uuid, $2::uuid, $3::date, 'open', now())
		ON CONFLICT (employee_id, shift_id, work_date) DO NOTHING
	`, b.EmployeeID, b.ShiftID, b.WorkDate)
	return perr.WrapIf(err, perr.ErrorCodeDB, "ensure summary row")
}

// SummaryForUpdate reads the bucket's row under an exclusive row lock
func (s *pg) SummaryForUpdate(ctx context.Context, b domain.Bucket) (domain.Summary, error) {
	var out domain.Summary
	var inEvt, outEvt *string
	err := s.q.QueryRow(ctx, `
		SELECT id::text, employee_id::text, shift_id::text, work_date,
		       time_in_event_id::text, time_out_event_id::text,
		       time_in_at, time_out_at, status, updated_at
		  FROM attendance_summaries
		 WHERE employee_id = $1::uuid AND shift_id = $2::uuid AND work_date = $3::date
		 FOR UPDATE
	`, b.EmployeeID, b.ShiftID, b.WorkDate).Scan(
		&out.ID, &out.EmployeeID, &out.ShiftID, &out.WorkDate,
		&inEvt, &outEvt, &out.InAt, &out.OutAt, &out.Status, &out.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Summary{}, perr.NotFoundf(
				"summary for employee %s on %s not found", b.EmployeeID, b.WorkDate.Format("2006-01-02"),
			)
		}
		return domain.Summary{}, perr.FromPostgres(err, "summary for update")
	}
	if inEvt != nil {
		out.InEventID = *inEvt
	}
	if outEvt != nil {
		out.OutEventID = *outEvt
	}
	return out, nil
}

func (s *pg) UpdateSummary(ctx context.Context, sum domain.Summary) error {
	var inEvt, outEvt *string
	if sum.InEventID != "" {
		inEvt = &sum.InEventID
	}
	if sum.OutEventID != "" {
		outEvt = &sum.OutEventID
	}
	_, err := s.q.Exec(ctx, `
		UPDATE attendance_summaries
		   SET time_in_event_id  = $2::uuid,
		       time_out_event_id = $3::uuid,
		       time_in_at        = $4,
		       time_out_at       = $5,
		       status            = $6,
		       updated_at        = now()
		 WHERE id = $1::uuid
	`, sum.ID, inEvt, outEvt, sum.InAt, sum.OutAt, string(sum.Status))
	return perr.FromPostgresWithField(err, "update summary")
}

func (s *pg) ListSummaries(ctx context.Context, f domain.SummaryFilter) ([]domain.Summary, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, employee_id::text, shift_id::text, work_date,
		       time_in_event_id::text, time_out_event_id::text,
		       time_in_at, time_out_at, status, updated_at
		  FROM attendance_summaries
		 WHERE ($1 = '' OR employee_id = $1::uuid)
		   AND ($2 = '' OR shift_id = $2::uuid)
		   AND ($3::date IS NULL OR work_date >= $3)
		   AND ($4::date IS NULL OR work_date <= $4)
		 ORDER BY work_date DESC, employee_id
	`, f.EmployeeID, f.ShiftID, ptime.Ptr(f.From), ptime.Ptr(f.To))
	if err != nil {
		return nil, perr.FromPostgres(err, "list summaries")
	}
	defer rows.Close()

	var out []domain.Summary
	for rows.Next() {
		var sum domain.Summary
		var inEvt, outEvt *string
		if err := rows.Scan(
			&sum.ID, &sum.EmployeeID, &sum.ShiftID, &sum.WorkDate,
			&inEvt, &outEvt, &sum.InAt, &sum.OutAt, &sum.Status, &sum.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if inEvt != nil {
			sum.InEventID = *inEvt
		}
		if outEvt != nil {
			sum.OutEventID = *outEvt
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// EnsureSchema creates the attendance tables when missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attendance_events (
			id          uuid PRIMARY KEY,
			employee_id uuid NOT NULL REFERENCES employees(id),
			shift_id    uuid REFERENCES shifts(id),
			event_type  text NOT NULL CHECK (event_type IN ('in', 'out')),
			occurred_at timestamptz NOT NULL,
			source      text NOT NULL DEFAULT '',
			created_at  timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS attendance_events_employee_idx
			ON attendance_events (employee_id, occurred_at DESC)`,
		`CREATE INDEX IF NOT EXISTS attendance_events_occurred_idx
			ON attendance_events (occurred_at)`,
		`CREATE TABLE IF NOT EXISTS attendance_summaries (
			id                uuid PRIMARY KEY,
			employee_id       uuid NOT NULL REFERENCES employees(id),
			shift_id          uuid NOT NULL REFERENCES shifts(id),
			work_date         date NOT NULL,
			time_in_event_id  uuid REFERENCES attendance_events(id),
			time_out_event_id uuid REFERENCES attendance_events(id),
			time_in_at        timestamptz,
			time_out_at       timestamptz,
			status            text NOT NULL CHECK (status IN ('open', 'closed')),
			updated_at        timestamptz NOT NULL DEFAULT now(),
			UNIQUE (employee_id, shift_id, work_date)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "ensure attendance schema")
		}
	}
	return nil
}
