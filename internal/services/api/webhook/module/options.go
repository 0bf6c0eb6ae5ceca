package module

import "wildwatch/internal/platform/config"

// Options holds configuration settings for the webhook module
type Options struct {
	// RatePerMin caps requests per client IP; 0 leaves ingestion unthrottled
	RatePerMin int
}

// FromConfig reads CORE_API_WEBHOOK_RATE_PER_MIN
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{RatePerMin: c.MayInt("WEBHOOK_RATE_PER_MIN", 0)}
}
