package search

import (
	"testing"

	"github.com/corkboard-app/corkboard/internal/models"
)

func sampleCards() []*models.Card {
	return []*models.Card{
		{ID: 1, Text: "Python tutorial for beginners", Tags: []string{"python", "intro"}},
		{ID: 2, Text: "Advanced Rust systems programming", Tags: []string{"rust"}},
		{ID: 3, Text: "Python and Rust interop guide", Tags: []string{"python", "rust"}},
	}
}

func matchedIDs(r *Result) []int {
	var ids []int
	for id := range r.MatchingIDs {
		ids = append(ids, id)
	}
	return ids
}

func assertMatches(t *testing.T, result *Result, want ...int) {
	t.Helper()
	if result.Cleared {
		t.Fatalf("Expected a match result, got cleared")
	}
	if len(result.MatchingIDs) != len(want) {
		t.Fatalf("Expected %d matches %v, got %v", len(want), want, matchedIDs(result))
	}
	for _, id := range want {
		if !result.Matches(id) {
			t.Errorf("Expected card %d to match, got %v", id, matchedIDs(result))
		}
	}
}

func TestMatchEndToEnd(t *testing.T) {
	cards := sampleCards()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{
			name:  "Wildcard NOT clause",
			query: "python not tutorial*",
			want:  []int{3},
		},
		{
			name:  "OR across the corpus",
			query: "python or rust",
			want:  []int{1, 2, 3},
		},
		{
			name:  "Quoted phrase keeps boolean keyword literal",
			query: `"python and rust"`,
			want:  []int{3},
		},
		{
			name:  "Tag text is searchable",
			query: "intro",
			want:  []int{1},
		},
		{
			name:  "No matches is not the same as cleared",
			query: "haskell",
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Match(tt.query, cards)
			assertMatches(t, result, tt.want...)
		})
	}
}

func TestMatchClearSentinel(t *testing.T) {
	cards := sampleCards()

	for _, raw := range []string{"", "   ", "\t\n"} {
		result := Match(raw, cards)
		if !result.Cleared {
			t.Errorf("Match(%q) should set Cleared", raw)
		}
		if len(result.MatchingIDs) != 0 {
			t.Errorf("Cleared result should carry no ids, got %v", matchedIDs(result))
		}
	}
}

func TestMatchNormalizesCase(t *testing.T) {
	cards := sampleCards()

	result := Match("  PYTHON Or RUST  ", cards)
	assertMatches(t, result, 1, 2, 3)
}

func TestMatchUsesBackText(t *testing.T) {
	cards := []*models.Card{
		{ID: 7, Text: "front side", BackText: "hidden answer"},
	}

	assertMatches(t, Match("hidden", cards), 7)
	assertMatches(t, Match(`"hidden answer"`, cards), 7)
	assertMatches(t, Match("front near/2 hidden", cards), 7)
}

func TestMatchIsPure(t *testing.T) {
	cards := sampleCards()

	first := Match("python not tutorial*", cards)
	second := Match("python not tutorial*", cards)

	if len(first.MatchingIDs) != len(second.MatchingIDs) {
		t.Errorf("Repeated calls disagree: %v vs %v", matchedIDs(first), matchedIDs(second))
	}
	for id := range first.MatchingIDs {
		if !second.Matches(id) {
			t.Errorf("Repeated calls disagree on id %d", id)
		}
	}

	// The snapshot itself is never mutated.
	if cards[0].Text != "Python tutorial for beginners" {
		t.Error("Match mutated the card snapshot")
	}
}
