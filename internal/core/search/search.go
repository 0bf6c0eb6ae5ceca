// Package search builds literal substring patterns for ILIKE filters
package search

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Term trims user input; an empty term means no filter
func Term(s string) string { return strings.TrimSpace(s) }

// Escape makes s literal inside a LIKE pattern using backslash as the escape character
func Escape(s string) string { return likeEscaper.Replace(s) }

// Contains returns a %s% pattern matching s literally, or "" for an empty term
func Contains(s string) string {
	t := Term(s)
	if t == "" {
		return ""
	}
	return "%" + Escape(t) + "%"
}
