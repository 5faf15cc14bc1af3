package main

import (
	"context"
	"flag"
	"time"

	"timeclock/internal/modkit"
	"timeclock/internal/modkit/module"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/logger"
	"timeclock/internal/platform/store"

	attmod "timeclock/internal/services/attendance/module"
	identmod "timeclock/internal/services/ident/module"
	schedmod "timeclock/internal/services/schedule/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fFrom = flag.String("from", "", "UTC start date YYYY-MM-DD")
		fTo   = flag.String("to", "", "UTC end date YYYY-MM-DD inclusive")
	)
	flag.Parse()

	if *fFrom == "" || *fTo == "" {
		l.Panic().Msg("must provide -from and -to")
	}
	from, err := time.Parse("2006-01-02", *fFrom)
	if err != nil {
		l.Panic().Err(err).Msg("bad -from")
	}
	to, err := time.Parse("2006-01-02", *fTo)
	if err != nil {
		l.Panic().Err(err).Msg("bad -to")
	}
	if to.Before(from) {
		l.Panic().Msg("-to must not be before -from")
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG}

	scheduleMod := schedmod.New(deps)
	identMod := identmod.New(deps)
	schedulePorts := module.MustPortsOf[schedmod.Ports](scheduleMod)
	identPorts := module.MustPortsOf[identmod.Ports](identMod)

	attendanceMod := attmod.New(deps, schedulePorts.Reader, identPorts.Matcher, identPorts.Directory)

	report, err := attendanceMod.Service().RebuildRange(context.Background(), from, to.AddDate(0, 0, 1))
	if err != nil {
		l.Panic().Err(err).Msg("rebuild failed")
	}

	l.Info().
		Int("replayed", report.Replayed).
		Int("skipped", report.Skipped).
		Str("from", from.Format("2006-01-02")).
		Str("to", to.Format("2006-01-02")).
		Msg("summary rebuild complete")
}
