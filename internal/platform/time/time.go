// Package time contains the injectable clock and calendar helpers
package time

import "time"

// Clock is the time source services depend on so throttling and "today" are testable
type Clock interface {
	Now() time.Time
}

// System is the wall clock
type System struct{}

// Now implements Clock
func (System) Now() time.Time { return time.Now() }

// Fixed is a clock pinned to T
type Fixed struct{ T time.Time }

// Now implements Clock
func (f Fixed) Now() time.Time { return f.T }

// StartOfDay returns local midnight of t in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds returns [start, end) of the local day containing t
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}
