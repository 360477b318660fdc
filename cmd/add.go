package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
	"github.com/corkboard-app/corkboard/internal/logger"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new card to the canvas",
	Long: `Add a new card with text, optional back text, tags, and a canvas position.

Text can be provided in several ways:
1. Via --text flag: corkboard add -c "Card text"
2. Via stdin: echo "Card text" | corkboard add
3. Via editor: corkboard add -e

When no text is provided and a terminal is available, your $EDITOR will open.
Set $EDITOR environment variable or use --editor-cmd to specify your preferred editor.`,
	RunE: runAdd,
}

var (
	addText     string
	addBackText string
	addTags     []string
	addX        float64
	addY        float64
	addColor    string
	useEditor   bool
	editorName  string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addText, "text", "c", "", "Card text")
	addCmd.Flags().StringVarP(&addBackText, "back", "b", "", "Back text of the card")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "T", []string{}, "Tags for the card (comma-separated)")
	addCmd.Flags().Float64VarP(&addX, "x", "x", 0, "Canvas x position")
	addCmd.Flags().Float64VarP(&addY, "y", "y", 0, "Canvas y position")
	addCmd.Flags().StringVar(&addColor, "color", "", "Card color (defaults to the configured color)")
	addCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use editor for text input")
	addCmd.Flags().StringVar(&editorName, "editor-cmd", "", "Specify editor to use (overrides $EDITOR)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addText == "" {
		stat, _ := os.Stdin.Stat()
		isPiped := (stat.Mode() & os.ModeCharDevice) == 0

		if useEditor && !isPiped {
			var err error
			addText, err = getTextFromEditor()
			if err != nil {
				return fmt.Errorf("failed to get text from editor: %w", err)
			}
		} else if isPiped {
			// Data is being piped to stdin
			addText = readStdinText()
		} else if isTerminalAvailable() {
			var err error
			addText, err = getTextFromEditor()
			if err != nil {
				logger.Debug("Editor failed, falling back to stdin input: %v", err)
				fmt.Println("Enter card text (press Ctrl+D when finished):")
				addText = readStdinText()
			}
		} else {
			fmt.Println("Enter card text (press Ctrl+D when finished):")
			addText = readStdinText()
		}
	}

	if addText == "" {
		return interrors.ErrEmptyText
	}

	x, y := addX, addY
	if appConfig.SnapToGrid && appConfig.GridSize > 0 {
		x = snapToGrid(x, appConfig.GridSize)
		y = snapToGrid(y, appConfig.GridSize)
	}

	color := addColor
	if color == "" {
		color = appConfig.DefaultCardColor
	}

	card, err := cardRepo.Create(addText, addBackText, addTags, x, y, color)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	fmt.Printf("Card created successfully!\n")
	fmt.Printf("ID: %d\n", card.ID)
	fmt.Printf("Text: %s\n", card.Text)
	if card.BackText != "" {
		fmt.Printf("Back: %s\n", card.BackText)
	}
	if len(card.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(card.Tags, ", "))
	}
	fmt.Printf("Position: (%.0f, %.0f)\n", card.X, card.Y)
	fmt.Printf("Created: %s\n", card.CreatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func snapToGrid(v float64, gridSize int) float64 {
	grid := float64(gridSize)
	return math.Round(v/grid) * grid
}

func readStdinText() string {
	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return strings.Join(lines, "\n")
}

// getTextFromEditor opens an editor for the user to input card text
func getTextFromEditor() (string, error) {
	tempFile, err := os.CreateTemp("", "corkboard-new-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	template := `[Write your card text here]

<!--
  Save and close the editor when done.
  To cancel, exit without saving.
-->`

	if _, err := tempFile.WriteString(template); err != nil {
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

	editedContent := string(editedBytes)

	if strings.Contains(editedContent, "[Write your card text here]") {
		return "", fmt.Errorf("no text provided (template unchanged)")
	}

	// Strip template comment lines if still present
	lines := strings.Split(editedContent, "\n")
	var textLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "<!--") || strings.HasPrefix(line, "-->") {
			continue
		}
		textLines = append(textLines, line)
	}

	return strings.TrimSpace(strings.Join(textLines, "\n")), nil
}

// openEditor opens a file in the user's preferred editor
func openEditor(filename string) error {
	// Determine which editor to use - in order of preference:
	// 1. --editor-cmd flag
	// 2. Config editor setting
	// 3. EDITOR environment variable
	// 4. VISUAL environment variable
	// 5. Auto-detection of common editors
	editorCmd := editorName
	if editorCmd == "" && appConfig != nil {
		editorCmd = appConfig.Editor
	}
	if editorCmd == "" {
		editorCmd = os.Getenv("EDITOR")
	}
	if editorCmd == "" {
		editorCmd = os.Getenv("VISUAL")
	}
	if editorCmd == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs", "code", "subl"} {
			if _, err := exec.LookPath(e); err == nil {
				editorCmd = e
				break
			}
		}
	}
	if editorCmd == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable, use --editor-cmd flag, or configure with: corkboard config set editor <editor>")
	}

	logger.Debug("Opening file in editor: %s %s", editorCmd, filename)

	// Handle editors that might have arguments (e.g., "code --wait")
	parts := strings.Fields(editorCmd)
	cmd := exec.Command(parts[0], append(parts[1:], filename)...)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editorCmd, err)
	}

	return nil
}

// isTerminalAvailable checks if we're running in an interactive terminal
func isTerminalAvailable() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
