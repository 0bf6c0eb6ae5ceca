// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /users or /api/detections
// ensures a single leading slash and no trailing slash; panics on the bare root
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Mask keeps the last keep runes of s and replaces the rest with '*'.
// Used for provider phone numbers and account ids in status payloads
func Mask(s string, keep int) string {
	r := []rune(std.TrimSpace(s))
	if len(r) == 0 {
		return ""
	}
	if keep < 0 {
		keep = 0
	}
	if keep >= len(r) {
		return std.Repeat("*", len(r))
	}
	return std.Repeat("*", len(r)-keep) + string(r[len(r)-keep:])
}

// FirstNonEmpty returns the first argument with non whitespace content
func FirstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if std.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Elide keeps the first head and last tail runes of s joined by "...".
// Strings too short to elide are returned unchanged
func Elide(s string, head, tail int) string {
	r := []rune(std.TrimSpace(s))
	if head < 0 {
		head = 0
	}
	if tail < 0 {
		tail = 0
	}
	if len(r) <= head+tail {
		return string(r)
	}
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
