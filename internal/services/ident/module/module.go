// Package module implements the ident service module
package module

import (
	"timeclock/internal/modkit"
	"timeclock/internal/modkit/httpkit"
	"timeclock/internal/modkit/repokit"
	"timeclock/internal/services/ident/domain"
	identhttp "timeclock/internal/services/ident/http"
	"timeclock/internal/services/ident/repo"
	"timeclock/internal/services/ident/service"
)

// Ports exposed by the ident module
type Ports struct {
	Matcher   domain.MatcherPort
	Directory domain.DirectoryPort
}

// Module implements the ident service module
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *service.Service
}

// New constructs a new ident module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(repokit.TxRunner(deps.PG), repo.NewPG(), service.Config{
		DefaultThreshold: opts.DefaultThreshold,
		MatchIndex:       opts.MatchIndex,
		HNSWM:            opts.HNSWM,
	})

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{Matcher: svc, Directory: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "ident" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	identhttp.Register(r, m.svc)
}
