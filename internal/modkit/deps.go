// Package modkit provides module wiring and core deps
package modkit

import (
	"wildwatch/internal/modkit/repokit"
	"wildwatch/internal/platform/config"
	"wildwatch/internal/platform/logger"
	ptime "wildwatch/internal/platform/time"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// Clock is nil in production wiring; use Now
	Clock ptime.Clock
}

// Now returns the injected clock or the system clock
func (d Deps) Now() ptime.Clock {
	if d.Clock != nil {
		return d.Clock
	}
	return ptime.System{}
}
