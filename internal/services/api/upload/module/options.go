package module

import "wildwatch/internal/platform/config"

// Options holds configuration settings for the upload module
type Options struct {
	Dir      string
	MaxBytes int64
}

// FromConfig reads CORE_API_UPLOADS_DIR and CORE_API_UPLOAD_MAX_BYTES
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{
		Dir:      c.MayString("UPLOADS_DIR", "uploads"),
		MaxBytes: int64(c.MayInt("UPLOAD_MAX_BYTES", 16_000_000_000)),
	}
}
