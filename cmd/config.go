package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/config"
	"github.com/corkboard-app/corkboard/internal/constants"
	interrors "github.com/corkboard-app/corkboard/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage corkboard configuration",
	Long:  `View and manage corkboard configuration settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current corkboard configuration settings.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value.

Available keys:
  - data-dir: Data directory for storing the card database
  - card-color: Default color for new cards
  - grid-size: Canvas grid size in pixels
  - snap-to-grid: Snap new cards to the grid (true/false)
  - debug: Enable/disable debug logging (true/false)
  - editor: Default editor for card text (e.g., "vim", "code --wait")`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Println("=== Corkboard Configuration ===")
	fmt.Printf("Config file:    %s\n", configPath)
	fmt.Printf("data-dir:       %s\n", cfg.DataDirectory)
	fmt.Printf("Database path:  %s\n", cfg.GetDatabasePath())
	fmt.Printf("card-color:     %s\n", cfg.DefaultCardColor)
	fmt.Printf("grid-size:      %d\n", cfg.GridSize)
	fmt.Printf("snap-to-grid:   %v\n", cfg.SnapToGrid)
	fmt.Printf("debug:          %v\n", cfg.Debug)
	if cfg.Editor != "" {
		fmt.Printf("editor:         %s\n", cfg.Editor)
	} else {
		fmt.Printf("editor:         Auto-detect\n")
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Println(configPath)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch key {
	case "data-dir":
		cfg.DataDirectory = expandPath(value)
		cfg.DatabasePath = "" // Will be regenerated
	case "card-color":
		cfg.DefaultCardColor = value
	case "grid-size":
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			return fmt.Errorf("invalid grid size: %s", value)
		}
		cfg.GridSize = size
	case "snap-to-grid":
		snap, err := parseBool(value)
		if err != nil {
			return err
		}
		cfg.SnapToGrid = snap
	case "debug":
		debug, err := parseBool(value)
		if err != nil {
			return err
		}
		cfg.Debug = debug
	case "editor":
		cfg.Editor = value
	default:
		return fmt.Errorf("%w: %s", interrors.ErrUnknownConfigKey, key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Configuration updated: %s = %s\n", key, value)
	return nil
}

func parseBool(value string) (bool, error) {
	switch value {
	case constants.BoolTrue, constants.BoolOne, constants.BoolYes:
		return true, nil
	case constants.BoolFalse, constants.BoolZero, constants.BoolNo:
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", interrors.ErrInvalidBoolean, value)
}
