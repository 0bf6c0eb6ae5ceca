package module

import (
	"time"

	"wildwatch/internal/platform/config"
)

// Options holds configuration settings for the auth module
type Options struct {
	Username     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
	LoginLimit   int
}

// FromConfig reads AUTH_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("AUTH_")
	return Options{
		Username:     c.MayString("USERNAME", ""),
		PasswordHash: c.MayString("PASSWORD_HASH", ""),
		Secret:       c.MayString("JWT_SECRET", ""),
		TTL:          c.MayDuration("SESSION_TTL", 12*time.Hour),
		LoginLimit:   c.MayInt("LOGIN_RATE_PER_MIN", 10),
	}
}
