package query

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "Lowercases",
			raw:      "PYTHON Tutorial",
			expected: "python tutorial",
		},
		{
			name:     "Trims surrounding whitespace",
			raw:      "  rust  ",
			expected: "rust",
		},
		{
			name:     "Empty input stays empty",
			raw:      "",
			expected: "",
		},
		{
			name:     "Whitespace-only collapses to the clear sentinel",
			raw:      " \t\n ",
			expected: "",
		},
		{
			name:     "Interior whitespace is preserved",
			raw:      "a  AND  b",
			expected: "a  and  b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "  Hello World  ", "MiXeD CaSe", "\talready normalized", `"Quoted Phrase"`}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}
