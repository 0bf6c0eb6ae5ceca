package store

import (
	"time"

	"wildwatch/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures postgres connectivity, tracing and boot behaviour
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Migrate applies the embedded goose migrations once the pool answers
	Migrate bool

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// FromEnv reads SERVICE_PGSQL_* into a Config; DBURL is required
func FromEnv(appName string) Config {
	c := config.New().Prefix("SERVICE_PGSQL_")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        true,
			URL:            c.MustString("DBURL"),
			MaxConns:       int32(c.MayInt("MAX_CONNS", 10)),
			LogSQL:         c.MayBool("LOG_SQL", false),
			SlowQueryMs:    c.MayInt("SLOW_MS", 200),
			Migrate:        c.MayBool("MIGRATE", true),
			ConnectRetries: c.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    c.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
}
