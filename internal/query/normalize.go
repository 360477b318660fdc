package query

import "strings"

// Normalize converts a raw user query into its canonical form: trimmed and
// lowercased. An empty result is the "clear the filter" sentinel, not a
// query that matches nothing. Idempotent.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
