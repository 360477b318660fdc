package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a card by ID",
	Long:  `Display the full content of a card by its ID, including back text and position.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	card, err := cardRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	fmt.Printf("================================================================================\n")
	fmt.Printf("ID: %d\n", card.ID)
	if len(card.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
	}
	fmt.Printf("Position: (%.0f, %.0f)\n", card.X, card.Y)
	if card.Color != "" {
		fmt.Printf("Color: %s\n", card.Color)
	}
	fmt.Printf("Created: %s\n", card.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated: %s\n", card.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("================================================================================\n\n")

	fmt.Println(card.Text)
	if card.BackText != "" {
		fmt.Println("\n--- Back ---")
		fmt.Println(card.BackText)
	}
	fmt.Println()

	return nil
}
