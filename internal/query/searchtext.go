package query

import "strings"

// BuildSearchText flattens a card's searchable fields into one lowercase
// string: front text, back text, and tags joined with single spaces. Missing
// fields contribute empty strings; only the outer result is trimmed.
func BuildSearchText(text, backText string, tags []string) string {
	joined := strings.ToLower(text) + " " +
		strings.ToLower(backText) + " " +
		strings.ToLower(strings.Join(tags, " "))
	return strings.TrimSpace(joined)
}
