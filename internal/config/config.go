package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/corkboard-app/corkboard/internal/constants"
)

type Config struct {
	DataDirectory string `json:"data_directory"`
	DatabasePath  string `json:"database_path,omitempty"`

	// Canvas settings
	DefaultCardColor string `json:"default_card_color"`
	GridSize         int    `json:"grid_size"`
	SnapToGrid       bool   `json:"snap_to_grid"`

	// Global settings
	Debug  bool   `json:"debug"`
	Editor string `json:"editor,omitempty"`
}

// getDefaultConfig returns a fresh copy of the default configuration
func getDefaultConfig() Config {
	return Config{
		DataDirectory: "", // Will be set to ~/.local/share/corkboard

		DefaultCardColor: "yellow",
		GridSize:         constants.DefaultGridSize,
		SnapToGrid:       false,

		Debug:  false,
		Editor: "", // Empty means auto-detect editor
	}
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "corkboard", "config.json"), nil
}

func GetDefaultDataDirectory() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", ".corkboard")
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "corkboard")
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		cfg := getDefaultConfig()
		cfg.DataDirectory = GetDefaultDataDirectory()
		cfg.DatabasePath = filepath.Join(cfg.DataDirectory, "cards.db")
		return &cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults for empty fields
	defaults := getDefaultConfig()

	if cfg.DataDirectory == "" {
		cfg.DataDirectory = GetDefaultDataDirectory()
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDirectory, "cards.db")
	}
	if cfg.DefaultCardColor == "" {
		cfg.DefaultCardColor = defaults.DefaultCardColor
	}
	if cfg.GridSize == 0 {
		cfg.GridSize = defaults.GridSize
	}

	return &cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create data directory if it doesn't exist
	if cfg.DataDirectory != "" {
		if err := os.MkdirAll(cfg.DataDirectory, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Marshal config to JSON
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write config file with secure permissions
	if err := os.WriteFile(configPath, data, constants.ConfigFileMode); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func InitializeConfig(dataDir string) (*Config, error) {
	// Get a fresh copy of the default configuration
	cfg := getDefaultConfig()

	// Set custom values if provided
	if dataDir != "" {
		cfg.DataDirectory = dataDir
	} else {
		cfg.DataDirectory = GetDefaultDataDirectory()
	}

	cfg.DatabasePath = filepath.Join(cfg.DataDirectory, "cards.db")

	// Save the configuration
	if err := Save(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDirectory, "cards.db")
}
