package api

import (
	"context"

	"timeclock/internal/modkit/repokit"
	"timeclock/internal/platform/store"

	attrepo "timeclock/internal/services/attendance/repo"
	identrepo "timeclock/internal/services/ident/repo"
	schedrepo "timeclock/internal/services/schedule/repo"
)

// EnsureSchema creates every table the services need, in dependency
// order, inside one transaction. Safe to run on every boot.
func EnsureSchema(ctx context.Context, st *store.Store) error {
	return st.PG.Tx(ctx, func(q repokit.Queryer) error {
		if err := schedrepo.NewPG().Bind(q).EnsureSchema(ctx); err != nil {
			return err
		}
		if err := identrepo.NewPG().Bind(q).EnsureSchema(ctx); err != nil {
			return err
		}
		return attrepo.NewPG().Bind(q).EnsureSchema(ctx)
	})
}
