package query

import (
	"regexp"
	"strings"
)

// The evaluator works by successive structural reduction instead of a
// tokenizer + AST: find the highest-priority construct in the expression,
// reduce it (recurse into a group, delegate a proximity clause, split on an
// operator token), and repeat on what remains. The priority order is fixed
// and non-standard on purpose:
//
//	parens > proximity > OR > NOT > AND
//
// OR splitting before NOT means "a or b not c" reads as a OR (b AND NOT c).
// Changing the order silently changes the meaning of mixed expressions, so
// it must stay as-is.
//
// Reduced parenthesized groups are substituted back into the expression as
// placeholder tokens carrying their boolean result. The placeholders use
// NUL bytes so no typeable query can collide with them.
const (
	placeholderTrue  = "\x00true\x00"
	placeholderFalse = "\x00false\x00"
)

// groupRe finds one non-nested parenthesized group. Nested parentheses are
// not part of the grammar: the inner pair is reduced and the remaining
// parens degrade to literal characters.
var groupRe = regexp.MustCompile(`\(([^()]+)\)`)

// Evaluate reports whether searchText satisfies the boolean query. The query
// is expected in normalized (lowercased) form; see Normalize. Evaluate is a
// total function: any string input yields a boolean and never panics.
// Malformed fragments - unbalanced parens, a bad proximity distance - fail
// their pattern tests and fall through to be matched as literal text.
//
// Operator tokens are the space-padded literals " or ", " not ", " and ".
// Fragments produced by splitting keep their surrounding spaces, which is
// what lets a leading " not " apply with a vacuously true left side. An
// expression that is empty or all whitespace evaluates true (the vacuous
// AND); callers treat an empty normalized query as "clear the filter"
// before ever reaching here.
func Evaluate(query, searchText string) bool {
	expr := query
	if strings.TrimSpace(expr) == "" {
		return true
	}

	// 1. Reduce one non-nested parenthesized group per pass.
	if loc := groupRe.FindStringSubmatchIndex(expr); loc != nil {
		inner := Evaluate(expr[loc[2]:loc[3]], searchText)
		reduced := expr[:loc[0]] + placeholder(inner) + expr[loc[1]:]
		return Evaluate(reduced, searchText)
	}

	// 2. A proximity clause is atomic and must span the whole expression.
	if trimmed := strings.TrimSpace(expr); proximityRe.MatchString(trimmed) {
		return WithinProximity(trimmed, searchText)
	}

	// 3. OR: lowest-precedence binary operator, split first.
	if strings.Contains(expr, " or ") {
		for _, part := range strings.Split(expr, " or ") {
			if Evaluate(part, searchText) {
				return true
			}
		}
		return false
	}

	// 4. NOT: split on the first occurrence; the right side re-enters the
	// full grammar, so operators after "not" bind to its right-hand side.
	if idx := strings.Index(expr, " not "); idx >= 0 {
		before := expr[:idx]
		after := expr[idx+len(" not "):]
		return Evaluate(before, searchText) && !Evaluate(after, searchText)
	}

	// Quoted phrases and placeholders are atoms. They are resolved before
	// the AND splits so that a quoted " and " stays literal text.
	trimmed := strings.TrimSpace(expr)
	if trimmed == placeholderTrue {
		return true
	}
	if trimmed == placeholderFalse {
		return false
	}
	if phrase, ok := unquote(trimmed); ok {
		return strings.Contains(searchText, phrase)
	}

	// 5. AND: explicit " and " token, or implicit over whitespace.
	if strings.Contains(expr, " and ") {
		for _, part := range strings.Split(expr, " and ") {
			if !Evaluate(part, searchText) {
				return false
			}
		}
		return true
	}

	parts := strings.Fields(expr)
	if len(parts) > 1 {
		for _, part := range parts {
			if !Evaluate(part, searchText) {
				return false
			}
		}
		return true
	}

	return evalAtom(parts[0], searchText)
}

// evalAtom resolves a single token: a group placeholder, a quoted exact
// phrase, or a plain/wildcard term.
func evalAtom(term, searchText string) bool {
	switch term {
	case placeholderTrue:
		return true
	case placeholderFalse:
		return false
	}
	if phrase, ok := unquote(term); ok {
		return strings.Contains(searchText, phrase)
	}
	return Matches(term, searchText)
}

// unquote strips one pair of matching double or single quotes. Mismatched or
// absent quotes leave the term to be matched literally.
func unquote(term string) (string, bool) {
	if len(term) < 2 {
		return "", false
	}
	first, last := term[0], term[len(term)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return term[1 : len(term)-1], true
	}
	return "", false
}

func placeholder(value bool) string {
	if value {
		return placeholderTrue
	}
	return placeholderFalse
}
