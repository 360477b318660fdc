package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage card tags",
	Long: `Manage tags for cards. Tags are searchable alongside card text.

Commands:
  list          List all tags
  add <id>      Add tags to a card
  remove <id>   Remove tags from a card
  set <id>      Set/replace all tags for a card`,
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	Long:  `List all tags on the canvas with their usage count.`,
	RunE:  runTagsList,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <card-id>",
	Short: "Add tags to a card",
	Long: `Add one or more tags to an existing card.

Example:
  corkboard tags add 123 -T research,ideas`,
	Args: cobra.ExactArgs(1),
	RunE: runTagsAdd,
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "remove <card-id>",
	Short: "Remove tags from a card",
	Long: `Remove specific tags from a card.

Example:
  corkboard tags remove 123 -T outdated,old`,
	Args: cobra.ExactArgs(1),
	RunE: runTagsRemove,
}

var tagsSetCmd = &cobra.Command{
	Use:   "set <card-id>",
	Short: "Set/replace all tags for a card",
	Long: `Replace all existing tags for a card with the specified tags.

Example:
  corkboard tags set 123 -T research,final`,
	Args: cobra.ExactArgs(1),
	RunE: runTagsSet,
}

var tagsFlag []string

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRemoveCmd)
	tagsCmd.AddCommand(tagsSetCmd)

	tagsAddCmd.Flags().StringSliceVarP(&tagsFlag, "tags", "T", []string{}, "Tags to add (comma-separated)")
	tagsRemoveCmd.Flags().StringSliceVarP(&tagsFlag, "tags", "T", []string{}, "Tags to remove (comma-separated)")
	tagsSetCmd.Flags().StringSliceVarP(&tagsFlag, "tags", "T", []string{}, "Tags to set (comma-separated)")

	_ = tagsAddCmd.MarkFlagRequired("tags")
	_ = tagsRemoveCmd.MarkFlagRequired("tags")
}

func runTagsList(_ *cobra.Command, _ []string) error {
	tags, err := cardRepo.GetAllTags()
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}

	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return nil
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Found %d tags:\n\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s (%d)\n", name, tags[name])
	}

	return nil
}

func runTagsAdd(_ *cobra.Command, args []string) error {
	cardID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	card, err := cardRepo.GetByID(cardID)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	existing := make(map[string]bool)
	for _, tag := range card.Tags {
		existing[tag] = true
	}

	var added []string
	for _, tag := range tagsFlag {
		if !existing[tag] {
			added = append(added, tag)
		}
	}

	if len(added) == 0 {
		fmt.Println("All specified tags are already present on this card.")
		return nil
	}

	allTags := append(card.Tags, added...)

	if err := cardRepo.UpdateTags(cardID, allTags); err != nil {
		return fmt.Errorf("failed to add tags: %w", err)
	}

	fmt.Printf("Added tags to card %d: %s\n", cardID, strings.Join(added, ", "))
	fmt.Printf("Card now has tags: %s\n", strings.Join(allTags, ", "))

	return nil
}

func runTagsRemove(_ *cobra.Command, args []string) error {
	cardID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	card, err := cardRepo.GetByID(cardID)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	toRemove := make(map[string]bool)
	for _, tag := range tagsFlag {
		toRemove[tag] = true
	}

	var remaining []string
	var removed []string
	for _, tag := range card.Tags {
		if toRemove[tag] {
			removed = append(removed, tag)
		} else {
			remaining = append(remaining, tag)
		}
	}

	if len(removed) == 0 {
		fmt.Println("None of the specified tags were found on this card.")
		return nil
	}

	if err := cardRepo.UpdateTags(cardID, remaining); err != nil {
		return fmt.Errorf("failed to remove tags: %w", err)
	}

	fmt.Printf("Removed tags from card %d: %s\n", cardID, strings.Join(removed, ", "))
	if len(remaining) > 0 {
		fmt.Printf("Remaining tags: %s\n", strings.Join(remaining, ", "))
	} else {
		fmt.Println("Card now has no tags.")
	}

	return nil
}

func runTagsSet(_ *cobra.Command, args []string) error {
	cardID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	if _, err := cardRepo.GetByID(cardID); err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	if err := cardRepo.UpdateTags(cardID, tagsFlag); err != nil {
		return fmt.Errorf("failed to set tags: %w", err)
	}

	if len(tagsFlag) > 0 {
		fmt.Printf("Set tags for card %d: %s\n", cardID, strings.Join(tagsFlag, ", "))
	} else {
		fmt.Printf("Removed all tags from card %d\n", cardID)
	}

	return nil
}
