package search

import (
	"github.com/corkboard-app/corkboard/internal/logger"
	"github.com/corkboard-app/corkboard/internal/models"
	"github.com/corkboard-app/corkboard/internal/query"
)

// Result is the outcome of one search pass. Cleared means the query
// normalized to empty: the caller should reset its filter state rather than
// treat the canvas as "matched nothing". MatchingIDs is only populated when
// Cleared is false.
type Result struct {
	Cleared     bool
	MatchingIDs map[int]struct{}
}

// Matches reports whether a card id is in the result set.
func (r *Result) Matches(id int) bool {
	_, ok := r.MatchingIDs[id]
	return ok
}

// Match evaluates a raw query against a snapshot of cards. It is pure:
// results are recomputed fresh on every call and the snapshot is never
// mutated.
func Match(rawQuery string, cards []*models.Card) *Result {
	normalized := query.Normalize(rawQuery)
	if normalized == "" {
		return &Result{Cleared: true}
	}

	ids := make(map[int]struct{})
	for _, card := range cards {
		searchText := query.BuildSearchText(card.Text, card.BackText, card.Tags)
		if query.Evaluate(normalized, searchText) {
			ids[card.ID] = struct{}{}
		}
	}

	return &Result{MatchingIDs: ids}
}

// Engine runs searches over the card store. The repository read is the only
// I/O in a search pass; evaluation itself is synchronous and CPU-only, so
// the engine is cheap to call on every keystroke.
type Engine struct {
	repo *models.CardRepository
}

func NewEngine(repo *models.CardRepository) *Engine {
	return &Engine{repo: repo}
}

// Search reads one consistent snapshot of the corpus and evaluates the query
// against it.
func (e *Engine) Search(rawQuery string) (*Result, error) {
	cards, err := e.repo.ListAll()
	if err != nil {
		return nil, err
	}

	result := Match(rawQuery, cards)
	if result.Cleared {
		logger.Debug("Empty query: clearing search filter")
	} else {
		logger.Debug("Query %q matched %d of %d cards", rawQuery, len(result.MatchingIDs), len(cards))
	}
	return result, nil
}

// MatchingCards runs Search and resolves the matching ids back to cards, in
// snapshot order, for display surfaces that want full cards rather than ids.
func (e *Engine) MatchingCards(rawQuery string) (*Result, []*models.Card, error) {
	cards, err := e.repo.ListAll()
	if err != nil {
		return nil, nil, err
	}

	result := Match(rawQuery, cards)
	if result.Cleared {
		return result, nil, nil
	}

	var matched []*models.Card
	for _, card := range cards {
		if result.Matches(card.ID) {
			matched = append(matched, card)
		}
	}
	return result, matched, nil
}
