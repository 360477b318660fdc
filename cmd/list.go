package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/constants"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cards",
	Long:  `List all cards with their ID, text preview, tags, and canvas position.`,
	RunE:  runList,
}

var (
	listLimit  int
	listOffset int
	listShort  bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", constants.DefaultListLimit, "Maximum number of cards to display")
	listCmd.Flags().IntVarP(&listOffset, "offset", "o", 0, "Number of cards to skip")
	listCmd.Flags().BoolVarP(&listShort, "short", "s", false, "Show only ID and text preview")
}

func runList(cmd *cobra.Command, args []string) error {
	cards, err := cardRepo.List(listLimit, listOffset)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if len(cards) == 0 {
		fmt.Println("No cards found.")
		return nil
	}

	fmt.Printf("Found %d cards:\n\n", len(cards))

	for _, card := range cards {
		preview := previewText(card.Text, constants.PreviewLength)
		if listShort {
			fmt.Printf("[%d] %s\n", card.ID, preview)
		} else {
			fmt.Printf("ID: %d\n", card.ID)
			fmt.Printf("Text: %s\n", preview)
			if len(card.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
			}
			fmt.Printf("Position: (%.0f, %.0f)\n", card.X, card.Y)
			fmt.Printf("Created: %s\n", formatTime(card.CreatedAt))
			fmt.Println(strings.Repeat("-", 60))
		}
	}

	return nil
}

func previewText(text string, maxLen int) string {
	preview := strings.ReplaceAll(text, "\n", " ")
	if len(preview) > maxLen {
		preview = preview[:maxLen-3] + "..."
	}
	return preview
}

func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02 15:04")
	}
}
