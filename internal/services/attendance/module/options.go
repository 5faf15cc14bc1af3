package module

import (
	"timeclock/internal/platform/config"
	"timeclock/internal/services/attendance/domain"
)

// Options holds configuration settings for the attendance module
type Options struct {
	GraceMinutes int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	f := cfg.Prefix("CORE_ATTENDANCE_")
	return Options{
		GraceMinutes: f.MayInt("GRACE_MINUTES", domain.DefaultGraceMinutes),
	}
}
