package module

import (
	"time"

	"wildwatch/internal/platform/config"
)

// Options holds configuration settings for the notify module
type Options struct {
	Enabled       bool
	MaxRetries    int
	RetryInterval time.Duration
	Buffer        int64
}

// FromConfig reads NOTIFY_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("NOTIFY_")
	return Options{
		Enabled:       c.MayBool("ENABLED", true),
		MaxRetries:    c.MayInt("MAX_RETRIES", 3),
		RetryInterval: c.MayDuration("RETRY_INTERVAL", time.Second),
		Buffer:        int64(c.MayInt("BUFFER", 256)),
	}
}
