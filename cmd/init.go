package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize corkboard configuration",
	Long: `Initialize corkboard configuration interactively or with flags.
This command sets up the configuration file and creates necessary directories.`,
	RunE: runInit,
}

var (
	initDataDir     string
	initInteractive bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initDataDir, "data-dir", "", "Data directory for storing the card database")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Run interactive setup")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if config already exists
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Configuration already exists at: %s\n", configPath)
		fmt.Print("Do you want to overwrite it? (y/N): ")

		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Configuration initialization cancelled.")
			return nil
		}
	}

	// Interactive mode
	if initInteractive {
		fmt.Println("=== Corkboard Configuration Setup ===")
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)

		defaultDataDir := config.GetDefaultDataDirectory()
		fmt.Printf("Data directory [%s]: ", defaultDataDir)
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			initDataDir = expandPath(input)
		} else {
			initDataDir = defaultDataDir
		}
	}

	// Create configuration
	cfg, err := config.InitializeConfig(initDataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Display summary
	fmt.Println("\n=== Configuration Summary ===")
	fmt.Printf("Config file:        %s\n", configPath)
	fmt.Printf("Data directory:     %s\n", cfg.DataDirectory)
	fmt.Printf("Database path:      %s\n", cfg.GetDatabasePath())
	fmt.Printf("Default card color: %s\n", cfg.DefaultCardColor)
	fmt.Printf("Grid size:          %d\n", cfg.GridSize)
	fmt.Printf("Snap to grid:       %v\n", cfg.SnapToGrid)

	fmt.Println("\nConfiguration initialized successfully!")
	fmt.Println("You can now use 'corkboard' commands to manage your cards.")

	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
