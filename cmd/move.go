package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

var moveCmd = &cobra.Command{
	Use:   "move [id] [x] [y]",
	Short: "Move a card on the canvas",
	Long: `Reposition a card to new canvas coordinates without changing its content.
Honors the snap-to-grid setting.

Example:
  corkboard move 12 340 -120`,
	Args: cobra.ExactArgs(3),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidCardID, args[0])
	}

	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidPosition, args[1])
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidPosition, args[2])
	}

	if appConfig.SnapToGrid && appConfig.GridSize > 0 {
		x = snapToGrid(x, appConfig.GridSize)
		y = snapToGrid(y, appConfig.GridSize)
	}

	if err := cardRepo.Move(id, x, y); err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}

	fmt.Printf("Card %d moved to (%.0f, %.0f)\n", id, x, y)
	return nil
}
