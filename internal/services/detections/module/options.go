package module

import (
	"time"

	"wildwatch/internal/platform/config"
)

// Options holds configuration settings for the detections module
type Options struct {
	Location        *time.Location
	DefaultPageSize int
	MaxPageSize     int
	OverviewMonths  int
}

// FromConfig reads CORE_API_TZ and CORE_DETECTIONS_*
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("CORE_DETECTIONS_")
	return Options{
		Location:        cfg.Prefix("CORE_API_").MayLocation("TZ"),
		DefaultPageSize: dc.MayInt("PAGE_SIZE", 20),
		MaxPageSize:     dc.MayInt("MAX_PAGE_SIZE", 500),
		OverviewMonths:  dc.MayInt("OVERVIEW_MONTHS", 12),
	}
}
