package query

import (
	"regexp"
	"strings"
)

// Matches reports whether a single atomic term occurs in haystack.
//
// Terms containing '*' are compiled to a case-insensitive regexp with each
// '*' standing for '.*', anchored at word boundaries, so "inter*" matches
// "international" but not "counterintelligence". Plain terms are bare
// substring containment with no word anchoring, so "inter" matches inside
// "counterintelligence" too. The asymmetry is deliberate: plain terms
// support partial-word search, wildcards are word-scoped patterns.
//
// Only '*' is a wildcard metacharacter. Other regexp metacharacters in a
// wildcard term pass through unescaped; a term that fails to compile simply
// matches nothing.
func Matches(term, haystack string) bool {
	if strings.Contains(term, "*") {
		pattern := `(?i)\b` + strings.ReplaceAll(term, "*", ".*") + `\b`
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(haystack)
	}
	return strings.Contains(haystack, term)
}
