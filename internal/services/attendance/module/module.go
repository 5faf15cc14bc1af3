// Package module implements the attendance service module
package module

import (
	"context"

	"timeclock/internal/modkit"
	"timeclock/internal/modkit/httpkit"
	"timeclock/internal/modkit/repokit"
	"timeclock/internal/services/attendance/domain"
	atthttp "timeclock/internal/services/attendance/http"
	"timeclock/internal/services/attendance/repo"
	"timeclock/internal/services/attendance/service"
	identdom "timeclock/internal/services/ident/domain"
	sched "timeclock/internal/services/schedule/domain"
)

// Ports exposed by the attendance module
type Ports struct {
	Recorder   domain.RecorderPort
	Reconciler domain.ReconcilerPort
	Query      domain.QueryPort
}

// Module implements the attendance service module
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *service.Service
}

// New constructs a new attendance module wired to its collaborators
func New(deps modkit.Deps, shifts sched.ReaderPort, matcher identdom.MatcherPort, directory identdom.DirectoryPort) *Module {
	opts := FromConfig(deps.Cfg)

	// bound lock waits so a stuck bucket fails fast instead of piling up
	db := repokit.WithBeginHooks(deps.PG, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, "SET LOCAL lock_timeout = '5s'")
		return err
	})

	svc := service.New(
		db,
		repo.NewPG(),
		service.Config{GraceMinutes: opts.GraceMinutes},
		shifts,
		matcher,
		directory,
	)

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{Recorder: svc, Reconciler: svc, Query: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "attendance" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	atthttp.Register(r, m.svc)
}

// Service exposes the concrete service for command line entrypoints
func (m *Module) Service() *service.Service { return m.svc }
