package query

import "testing"

const sampleText = "python tutorial for beginners covering basics"

func TestEvaluateSingleTerms(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected bool
	}{
		{
			name:     "Plain substring hit",
			query:    "python",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Plain substring miss",
			query:    "rust",
			text:     sampleText,
			expected: false,
		},
		{
			name:     "Partial word matches",
			query:    "begin",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Wildcard respects word boundaries",
			query:    "tutor*",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Wildcard misses mid-word",
			query:    "utor*",
			text:     sampleText,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.query, tt.text); got != tt.expected {
				t.Errorf("Evaluate(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.expected)
			}
		})
	}
}

func TestEvaluateBooleanOperators(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected bool
	}{
		{
			name:     "Explicit AND both present",
			query:    "python and tutorial",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Explicit AND one missing",
			query:    "python and rust",
			text:     sampleText,
			expected: false,
		},
		{
			name:     "Implicit AND over bare terms",
			query:    "python tutorial",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Implicit AND one missing",
			query:    "python rust",
			text:     sampleText,
			expected: false,
		},
		{
			name:     "OR first branch",
			query:    "python or rust",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "OR second branch",
			query:    "rust or python",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "OR both missing",
			query:    "rust or java",
			text:     sampleText,
			expected: false,
		},
		{
			name:     "NOT excludes",
			query:    "python not tutorial",
			text:     sampleText,
			expected: false,
		},
		{
			name:     "NOT passes when right side absent",
			query:    "python not rust",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Leading NOT has a vacuously true left side",
			query:    " not rust",
			text:     sampleText,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.query, tt.text); got != tt.expected {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

// The fixed reduction order makes OR split before NOT, so "a or b not c"
// reads as a OR (b AND NOT c).
func TestEvaluateNotOrPrecedence(t *testing.T) {
	texts := []string{
		"a only",
		"b only",
		"b with c",
		"c only",
		"a with c",
	}

	for _, text := range texts {
		got := Evaluate("a or b not c", text)
		want := Evaluate("a", text) || (Evaluate("b", text) && !Evaluate("c", text))
		if got != want {
			t.Errorf("Evaluate(%q, %q) = %v, want %v", "a or b not c", text, got, want)
		}
	}
}

func TestEvaluateIdentities(t *testing.T) {
	texts := []string{sampleText, "rust systems programming", "", "a b c"}
	for _, text := range texts {
		if Evaluate("a or b", text) != (Evaluate("a", text) || Evaluate("b", text)) {
			t.Errorf("OR identity violated for text %q", text)
		}
		if Evaluate("a and b", text) != (Evaluate("a", text) && Evaluate("b", text)) {
			t.Errorf("AND identity violated for text %q", text)
		}
		if Evaluate("a b", text) != Evaluate("a and b", text) {
			t.Errorf("implicit AND differs from explicit AND for text %q", text)
		}
	}
}

func TestEvaluatePhrases(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected bool
	}{
		{
			name:     "Exact phrase present",
			query:    `"hello world"`,
			text:     "say hello world now",
			expected: true,
		},
		{
			name:     "Punctuation breaks the phrase",
			query:    `"hello world"`,
			text:     "hello, world",
			expected: false,
		},
		{
			name:     "Single-quoted phrase",
			query:    "'for beginners'",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Quoted boolean keyword stays literal",
			query:    `"python and rust"`,
			text:     "python and rust interop guide",
			expected: true,
		},
		{
			name:     "Quoted boolean keyword does not act as AND",
			query:    `"python and rust"`,
			text:     "python beside rust",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.query, tt.text); got != tt.expected {
				t.Errorf("Evaluate(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.expected)
			}
		})
	}
}

func TestEvaluateGroups(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected bool
	}{
		{
			name:     "Group before NOT",
			query:    "(python or rust) not tutorial",
			text:     sampleText,
			expected: false,
		},
		{
			name:     "Group passes",
			query:    "(python or rust) not java",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Two sibling groups reduce one per pass",
			query:    "(python) (tutorial or guide)",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Proximity wrapped in a group composes",
			query:    "(python near/2 for) and basics",
			text:     sampleText,
			expected: true,
		},
		{
			name:     "Grouped proximity failure",
			query:    "(python near/0 basics) or covering",
			text:     sampleText,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.query, tt.text); got != tt.expected {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestEvaluateWholeExpressionProximity(t *testing.T) {
	haystack := "alpha beta gamma delta"

	if !Evaluate("alpha near/1 beta", haystack) {
		t.Error("Expected alpha near/1 beta to hold")
	}
	if Evaluate("alpha near/0 delta", haystack) {
		t.Error("Expected alpha near/0 delta to fail")
	}
	if !Evaluate("gamma n/2 alpha", haystack) {
		t.Error("Expected gamma n/2 alpha to hold")
	}
}

// Malformed input must degrade to literal text, never panic.
func TestEvaluateTotality(t *testing.T) {
	queries := []string{
		"",
		"   ",
		"(unbalanced",
		"unbalanced)",
		"(()",
		"()",
		`"unterminated`,
		"'",
		"term near/ other",
		"term near/x other",
		"near/2",
		"and",
		"or",
		"not",
		" not ",
		"a or",
		"((nested) groups)",
		"\x00true\x00ish",
		"a and (b or",
		"*",
		"**",
		"( near/1 )",
	}
	texts := []string{"", "some text here", "(parens) in text", sampleText}

	for _, q := range queries {
		for _, text := range texts {
			// Totality: must return without panicking.
			first := Evaluate(q, text)
			second := Evaluate(q, text)
			if first != second {
				t.Errorf("Evaluate(%q, %q) not deterministic: %v then %v", q, text, first, second)
			}
		}
	}
}

func TestEvaluateUnbalancedParensAsLiterals(t *testing.T) {
	// A paren that never closes is left in the expression and ends up matched
	// as literal term text.
	if !Evaluate("(python", "(python notes") {
		t.Error("Expected literal '(python' to match text containing it")
	}
	if Evaluate("(python", sampleText) {
		t.Error("Expected literal '(python' to miss text without the paren")
	}
}

func TestEvaluatePurity(t *testing.T) {
	query := "(python or rust) not tutorial*"
	for i := 0; i < 5; i++ {
		if got := Evaluate(query, sampleText); got != false {
			t.Fatalf("Evaluate changed answers across calls: iteration %d got %v", i, got)
		}
	}
}
