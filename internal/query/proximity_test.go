package query

import "testing"

func TestWithinProximity(t *testing.T) {
	haystack := "alpha beta gamma delta"

	tests := []struct {
		name     string
		clause   string
		expected bool
	}{
		{
			name:     "Adjacent words within distance 1",
			clause:   "alpha near/1 beta",
			expected: true,
		},
		{
			name:     "Distance 0 never spans distinct tokens",
			clause:   "alpha near/0 delta",
			expected: false,
		},
		{
			name:     "Distance 0 holds when one token satisfies both terms",
			clause:   "alp near/0 pha",
			expected: true,
		},
		{
			name:     "Distance covers the span",
			clause:   "alpha near/3 delta",
			expected: true,
		},
		{
			name:     "Distance just short of the span",
			clause:   "alpha near/2 delta",
			expected: false,
		},
		{
			name:     "Short operator form",
			clause:   "beta n/1 gamma",
			expected: true,
		},
		{
			name:     "Wildcard terms are honored",
			clause:   "alp* near/1 bet*",
			expected: true,
		},
		{
			name:     "Missing term",
			clause:   "alpha near/5 omega",
			expected: false,
		},
		{
			name:     "Malformed distance",
			clause:   "alpha near/x beta",
			expected: false,
		},
		{
			name:     "Missing operand",
			clause:   "near/2 beta",
			expected: false,
		},
		{
			name:     "Not a proximity clause at all",
			clause:   "alpha beta",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinProximity(tt.clause, haystack); got != tt.expected {
				t.Errorf("WithinProximity(%q) = %v, want %v", tt.clause, got, tt.expected)
			}
		})
	}
}
