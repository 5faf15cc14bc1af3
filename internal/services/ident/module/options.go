package module

import "timeclock/internal/platform/config"

// Options holds configuration settings for the ident module
type Options struct {
	DefaultThreshold float64
	MatchIndex       string
	HNSWM            int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	f := cfg.Prefix("CORE_IDENT_")
	return Options{
		DefaultThreshold: f.MayFloat64("DEFAULT_THRESHOLD", 0.6),
		MatchIndex:       f.MayString("MATCH_INDEX", "linear"),
		HNSWM:            f.MayInt("HNSW_M", 16),
	}
}
