// Package gate decides whether a subscriber is due another alert
package gate

import (
	"time"

	"wildwatch/internal/core/frequency"
)

// ShouldNotify is true when nothing was sent yet or at least frequencyMinutes have passed since lastSentAt.
// A non-positive frequency never throttles
func ShouldNotify(frequencyMinutes int, lastSentAt *time.Time, now time.Time) bool {
	if lastSentAt == nil || lastSentAt.IsZero() || frequencyMinutes <= 0 {
		return true
	}
	return now.Sub(*lastSentAt) >= frequency.Duration(frequencyMinutes)
}

// Decision labels used in logs and metrics
const (
	Allowed   = "allowed"
	Throttled = "throttled"
)
