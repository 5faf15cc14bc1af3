// Package service provides the schedule service implementation
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/modkit/repokit"
	perr "timeclock/internal/platform/errors"
	"timeclock/internal/services/schedule/domain"
	"timeclock/internal/services/schedule/repo"
)

// Service implements domain.ReaderPort and domain.WriterPort over the pg repo
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// New constructs a schedule service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	if db == nil {
		panic("schedule.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("schedule.Service requires a non nil Repo binder")
	}
	return &Service{DB: db, Binder: binder}
}

// GetShift implements domain.ReaderPort
func (s *Service) GetShift(ctx context.Context, id string) (domain.Shift, error) {
	if id == "" {
		return domain.Shift{}, perr.InvalidArgf("shift id is required")
	}
	return s.Binder.Bind(s.DB).Get(ctx, id)
}

// ListShifts implements domain.ReaderPort
func (s *Service) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	return s.Binder.Bind(s.DB).List(ctx)
}

// CreateShift implements domain.WriterPort
func (s *Service) CreateShift(
	ctx context.Context,
	name string,
	clockIn, clockOut domain.MinuteOfDay,
) (domain.Shift, error) {
	if name == "" {
		return domain.Shift{}, perr.InvalidArgf("shift name is required")
	}
	if !clockIn.Valid() || !clockOut.Valid() {
		return domain.Shift{}, perr.InvalidArgf("clock times must be within 00:00..23:59")
	}
	if clockIn == clockOut {
		return domain.Shift{}, perr.InvalidArgf("shift cannot start and end at the same minute")
	}
	sh := domain.Shift{
		ID:        uuid.NewString(),
		Name:      name,
		ClockIn:   clockIn,
		ClockOut:  clockOut,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Binder.Bind(s.DB).Insert(ctx, sh); err != nil {
		return domain.Shift{}, err
	}
	return sh, nil
}
