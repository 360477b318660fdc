package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/constants"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cards with a boolean query",
	Long: `Search cards using the boolean query language. Queries match against card
text, back text, and tags.

Supported syntax:
  python rust          implicit AND over bare terms
  python and rust      explicit AND
  python or rust       OR (lowest precedence, split before NOT)
  python not tutorial  AND NOT
  "exact phrase"       quoted exact substring match
  inter*               word-boundary anchored wildcard
  (a or b) not c       parenthesized grouping (non-nested)
  cat near/3 dog       the two terms within 3 words of each other

An empty query clears the filter rather than matching nothing.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

var (
	searchIDsOnly bool
	searchShort   bool
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchIDsOnly, "ids", false, "Print only matching card IDs")
	searchCmd.Flags().BoolVarP(&searchShort, "short", "s", false, "Show only ID and text preview")
}

func runSearch(_ *cobra.Command, args []string) error {
	rawQuery := strings.Join(args, " ")

	result, cards, err := searchEngine.MatchingCards(rawQuery)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if result.Cleared {
		fmt.Println("Empty query: search filter cleared.")
		return nil
	}

	if len(cards) == 0 {
		fmt.Println("No matching cards found.")
		return nil
	}

	if searchIDsOnly {
		for _, card := range cards {
			fmt.Println(card.ID)
		}
		return nil
	}

	if len(cards) == 1 {
		fmt.Println("Found 1 matching card:")
	} else {
		fmt.Printf("Found %d matching cards:\n", len(cards))
	}
	fmt.Println()

	for _, card := range cards {
		preview := previewText(card.Text, constants.SearchPreviewLength)
		if searchShort {
			fmt.Printf("[%d] %s\n", card.ID, preview)
		} else {
			fmt.Printf("ID: %d\n", card.ID)
			fmt.Printf("Text: %s\n", preview)
			if card.BackText != "" {
				fmt.Printf("Back: %s\n", previewText(card.BackText, constants.ShortPreviewLength))
			}
			if len(card.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
			}
			fmt.Printf("Created: %s\n", formatTime(card.CreatedAt))
			fmt.Println(strings.Repeat("-", 60))
		}
	}

	return nil
}
