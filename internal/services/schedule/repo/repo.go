// Package repo provides the postgres repository for shift definitions
package repo

import (
	"context"
	"strings"

	"timeclock/internal/modkit/repokit"
	perr "timeclock/internal/platform/errors"
	"timeclock/internal/services/schedule/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the schedule repository
type Storage interface {
	Get(ctx context.Context, id string) (domain.Shift, error)
	List(ctx context.Context) ([]domain.Shift, error)
	Insert(ctx context.Context, s domain.Shift) error
	EnsureSchema(ctx context.Context) error
}

type pg struct{ q repokit.Queryer }

func (s *pg) Get(ctx context.Context, id string) (domain.Shift, error) {
	var out domain.Shift
	var in, outMin int
	err := s.q.QueryRow(ctx, `
		SELECT id::text, name, clock_in, clock_out, created_at
		  FROM shifts
		 WHERE id = $1::uuid
	`, id).Scan(&out.ID, &out.Name, &in, &outMin, &out.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Shift{}, perr.NotFoundf("shift %s not found", id)
		}
		return domain.Shift{}, perr.FromPostgres(err, "get shift")
	}
	out.ClockIn = domain.MinuteOfDay(in)
	out.ClockOut = domain.MinuteOfDay(outMin)
	return out, nil
}

func (s *pg) List(ctx context.Context) ([]domain.Shift, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, name, clock_in, clock_out, created_at
		  FROM shifts
		 ORDER BY name, id
	`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list shifts")
	}
	defer rows.Close()

	var out []domain.Shift
	for rows.Next() {
		var sh domain.Shift
		var in, outMin int
		if err := rows.Scan(&sh.ID, &sh.Name, &in, &outMin, &sh.CreatedAt); err != nil {
			return nil, err
		}
		sh.ClockIn = domain.MinuteOfDay(in)
		sh.ClockOut = domain.MinuteOfDay(outMin)
		out = append(out, sh)
	}
	return out, rows.Err()
}

func (s *pg) Insert(ctx context.Context, sh domain.Shift) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO shifts (id, name, clock_in, clock_out, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5)
	`, sh.ID, sh.Name, int(sh.ClockIn), int(sh.ClockOut), sh.CreatedAt)
	return perr.FromPostgresWithField(err, "insert shift")
}

// EnsureSchema creates the shifts table when missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS shifts (
			id         uuid PRIMARY KEY,
			name       text NOT NULL,
			clock_in   smallint NOT NULL CHECK (clock_in  BETWEEN 0 AND 1439),
			clock_out  smallint NOT NULL CHECK (clock_out BETWEEN 0 AND 1439),
			created_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	return perr.WrapIf(err, perr.ErrorCodeDB, "ensure shifts schema")
}
