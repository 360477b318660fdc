package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an existing card",
	Long: `Update the text, back text, tags, or color of an existing card.
Only the fields provided via flags are changed.

Example:
  corkboard update 12 -c "New text" -T research,todo`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateText     string
	updateBackText string
	updateTags     []string
	updateColor    string
	updateEditor   bool
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateText, "text", "c", "", "New card text")
	updateCmd.Flags().StringVarP(&updateBackText, "back", "b", "", "New back text")
	updateCmd.Flags().StringSliceVarP(&updateTags, "tags", "T", nil, "Replace tags (comma-separated)")
	updateCmd.Flags().StringVar(&updateColor, "color", "", "New card color")
	updateCmd.Flags().BoolVarP(&updateEditor, "editor", "e", false, "Edit card text in your editor")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	card, err := cardRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	if updateEditor {
		edited, err := editTextInEditor(card.Text)
		if err != nil {
			return fmt.Errorf("failed to edit card text: %w", err)
		}
		card.Text = edited
	} else if cmd.Flags().Changed("text") {
		card.Text = updateText
	}

	if cmd.Flags().Changed("back") {
		card.BackText = updateBackText
	}
	if cmd.Flags().Changed("tags") {
		card.Tags = updateTags
	}
	if cmd.Flags().Changed("color") {
		card.Color = updateColor
	}

	if card.Text == "" {
		return interrors.ErrEmptyText
	}

	if err := cardRepo.Update(card); err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	fmt.Printf("Card %d updated successfully.\n", card.ID)
	fmt.Printf("Text: %s\n", previewText(card.Text, 100))
	if len(card.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
	}

	return nil
}

// editTextInEditor opens the current text in the user's editor and returns
// the saved result.
func editTextInEditor(current string) (string, error) {
	tempFile, err := os.CreateTemp("", "corkboard-edit-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.WriteString(current); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	tempFile.Close()

	if err := openEditor(tempFile.Name()); err != nil {
		return "", err
	}

	editedBytes, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}

	return strings.TrimSpace(string(editedBytes)), nil
}
