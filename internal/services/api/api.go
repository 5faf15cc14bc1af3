// Package api provides the HTTP API for the application
package api

import (
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/logger"
	phttp "timeclock/internal/platform/net/http"
	"timeclock/internal/platform/store"

	"timeclock/internal/modkit"
	"timeclock/internal/modkit/httpkit"
	"timeclock/internal/modkit/module"

	metamod "timeclock/internal/services/api/meta/module"
	attmod "timeclock/internal/services/attendance/module"
	identmod "timeclock/internal/services/ident/module"
	schedmod "timeclock/internal/services/schedule/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// schedule and ident come up first, attendance consumes their ports
	scheduleMod := schedmod.New(deps)
	identMod := identmod.New(deps)

	schedulePorts := module.MustPortsOf[schedmod.Ports](scheduleMod)
	identPorts := module.MustPortsOf[identmod.Ports](identMod)

	attendanceMod := attmod.New(deps, schedulePorts.Reader, identPorts.Matcher, identPorts.Directory)

	mods := []module.Module{
		metamod.New(deps),
		scheduleMod,
		identMod,
		attendanceMod,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes
			m.MountRoutes(api)
		}
	})
}
