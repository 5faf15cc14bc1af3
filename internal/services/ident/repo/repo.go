// Package repo provides the postgres repository for employees and descriptors
package repo

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"

	"timeclock/internal/modkit/repokit"
	perr "timeclock/internal/platform/errors"
	"timeclock/internal/services/ident/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the ident repository
type Storage interface {
	InsertEmployee(ctx context.Context, e domain.Employee) error
	GetEmployee(ctx context.Context, id string) (domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	SetActive(ctx context.Context, id string, active bool) error
	InsertDescriptor(ctx context.Context, id, employeeID string, d domain.Descriptor) error
	SetDescriptorActive(ctx context.Context, id string, active bool) error
	ActiveCandidates(ctx context.Context) ([]domain.Candidate, error)
	EnsureSchema(ctx context.Context) error
}

type pg struct{ q repokit.Queryer }

func (s *pg) InsertEmployee(ctx context.Context, e domain.Employee) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO employees (id, full_name, shift_id, active, created_at)
		VALUES ($1::uuid, $2, $3::uuid, $4, $5)
	`, e.ID, e.FullName, e.ShiftID, e.Active, e.CreatedAt)
	return perr.FromPostgresWithField(err, "insert employee")
}

func (s *pg) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	var out domain.Employee
	err := s.q.QueryRow(ctx, `
		SELECT id::text, full_name, shift_id::text, active, created_at
		  FROM employees
		 WHERE id = $1::uuid
	`, id).Scan(&out.ID, &out.FullName, &out.ShiftID, &out.Active, &out.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Employee{}, perr.NotFoundf("employee %s not found", id)
		}
		return domain.Employee{}, perr.FromPostgres(err, "get employee")
	}
	return out, nil
}

func (s *pg) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, full_name, shift_id::text, active, created_at
		  FROM employees
		 ORDER BY id
	`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list employees")
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.ShiftID, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *pg) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE employees SET active = $2 WHERE id = $1::uuid
	`, id, active)
	if err != nil {
		return perr.FromPostgres(err, "set employee active")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("employee %s not found", id)
	}
	return nil
}

func (s *pg) InsertDescriptor(ctx context.Context, id, employeeID string, d domain.Descriptor) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO face_descriptors (id, employee_id, descriptor, active, created_at)
		VALUES ($1::uuid, $2::uuid, $3::vector, TRUE, now())
	`, id, employeeID, pgvector.NewVector(d))
	return perr.FromPostgresWithField(err, "insert descriptor")
}

func (s *pg) SetDescriptorActive(ctx context.Context, id string, active bool) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE face_descriptors SET active = $2 WHERE id = $1::uuid
	`, id, active)
	if err != nil {
		return perr.FromPostgres(err, "set descriptor active")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("descriptor %s not found", id)
	}
	return nil
}

// ActiveCandidates returns every descriptor for active employees
// ordered by employee id so scans resolve ties deterministically
func (s *pg) ActiveCandidates(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := s.q.Query(ctx, `
		SELECT d.employee_id::text, d.descriptor
		  FROM face_descriptors d
		  JOIN employees e ON e.id = d.employee_id
		 WHERE e.active AND d.active
		 ORDER BY d.employee_id, d.id
	`)
	if err != nil {
		return nil, perr.FromPostgres(err, "load candidates")
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		var vec pgvector.Vector
		if err := rows.Scan(&c.EmployeeID, &vec); err != nil {
			return nil, err
		}
		c.Descriptor = domain.Descriptor(vec.Slice())
		out = append(out, c)
	}
	return out, rows.Err()
}

// EnsureSchema creates the ident tables when missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS employees (
			id         uuid PRIMARY KEY,
			full_name  text NOT NULL,
			shift_id   uuid NOT NULL REFERENCES shifts(id),
			active     boolean NOT NULL DEFAULT true,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS face_descriptors (
			id          uuid PRIMARY KEY,
			employee_id uuid NOT NULL REFERENCES employees(id),
			descriptor  vector(128) NOT NULL,
			active      boolean NOT NULL DEFAULT TRUE,
			created_at  timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS face_descriptors_employee_idx
			ON face_descriptors (employee_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "ensure ident schema")
		}
	}
	return nil
}
