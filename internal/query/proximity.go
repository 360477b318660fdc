package query

import (
	"regexp"
	"strconv"
	"strings"
)

// proximityRe recognizes a single proximity clause. It must span the entire
// expression: proximity cannot be composed inline with bare and/or/not
// tokens, only wrapped in parentheses.
var proximityRe = regexp.MustCompile(`(?i)^(.+)\s+(?:near|n)/(\d+)\s+(.+)$`)

// WithinProximity evaluates a whole-expression proximity clause of the form
// "<term1> near/<N> <term2>" (or the short "n/<N>"). The haystack is split
// on whitespace into an ordered word list; the clause holds iff some token
// matching term1 and some token matching term2 sit within N positions of
// each other. Distance 0 is valid and means the same token satisfies both
// terms. Wildcards inside the terms are honored via Matches.
//
// A clause that does not fit the pattern returns false; the evaluator then
// treats the text as ordinary terms.
func WithinProximity(clause, haystack string) bool {
	m := proximityRe.FindStringSubmatch(strings.TrimSpace(clause))
	if m == nil {
		return false
	}

	distance, err := strconv.Atoi(m[2])
	if err != nil {
		return false
	}

	term1, term2 := m[1], m[3]
	words := strings.Fields(haystack)

	var positions1, positions2 []int
	for i, word := range words {
		if Matches(term1, word) {
			positions1 = append(positions1, i)
		}
		if Matches(term2, word) {
			positions2 = append(positions2, i)
		}
	}

	// O(|positions1| * |positions2|); per-card text is short.
	for _, i := range positions1 {
		for _, j := range positions2 {
			d := i - j
			if d < 0 {
				d = -d
			}
			if d <= distance {
				return true
			}
		}
	}

	return false
}
