package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a card",
	Long: `Delete a card from the canvas by its ID.
Asks for confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")
}

func runDelete(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	card, err := cardRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	if !deleteForce {
		fmt.Printf("Delete card %d: %q?\n", card.ID, previewText(card.Text, 60))
		fmt.Print("Are you sure? (y/N): ")

		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := cardRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	fmt.Printf("Card %d deleted.\n", id)
	return nil
}
