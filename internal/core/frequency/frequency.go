// Package frequency maps alert frequency labels to minutes and back
package frequency

import (
	"slices"
	"strconv"
	"time"

	perr "wildwatch/internal/platform/errors"
)

var labels = []struct {
	label   string
	minutes int
}{
	{"2min", 2},
	{"5min", 5},
	{"10min", 10},
	{"30min", 30},
	{"1hr", 60},
}

// Allowed lists the accepted minute values in ascending order
func Allowed() []int {
	out := make([]int, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.minutes)
	}
	return out
}

// Valid reports whether minutes is one of the accepted values
func Valid(minutes int) bool { return slices.Contains(Allowed(), minutes) }

// FromLabel translates "2min".."1hr" into minutes.
// A bare number that is itself an accepted value ("30") is taken as minutes
func FromLabel(label string) (int, error) {
	for _, l := range labels {
		if l.label == label {
			return l.minutes, nil
		}
	}
	if n, err := strconv.Atoi(label); err == nil && Valid(n) {
		return n, nil
	}
	return 0, perr.WithField(perr.Validationf("alertFrequency must be one of 2min, 5min, 10min, 30min, 1hr"), "alertFrequency")
}

// Label is the inverse of FromLabel; empty for unknown values
func Label(minutes int) string {
	for _, l := range labels {
		if l.minutes == minutes {
			return l.label
		}
	}
	return ""
}

// Duration converts accepted minutes into a time.Duration
func Duration(minutes int) time.Duration { return time.Duration(minutes) * time.Minute }
