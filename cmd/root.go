package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/config"
	"github.com/corkboard-app/corkboard/internal/database"
	"github.com/corkboard-app/corkboard/internal/logger"
	"github.com/corkboard-app/corkboard/internal/models"
	"github.com/corkboard-app/corkboard/internal/search"
)

var (
	db           *database.DB
	cardRepo     *models.CardRepository
	searchEngine *search.Engine
	appConfig    *config.Config
	debugFlag    bool
	Version      = "dev" // Version is set from main.go
)

var rootCmd = &cobra.Command{
	Use:     "corkboard",
	Short:   "A spatial card-based note canvas with boolean search",
	Version: Version,
	Long: `corkboard manages note cards on a spatial canvas: free text, optional back
text, tags, and an (x, y) position. Its search command speaks a small boolean
query language with AND/OR/NOT, quoted phrases, * wildcards, parentheses, and
near/N proximity clauses.

First time users should run 'corkboard init' to set up the configuration.`,
}

func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initAppConfig)
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func initAppConfig() {
	// Skip initialization for init and config commands
	if len(os.Args) > 1 && (os.Args[1] == "init" || os.Args[1] == "config") {
		return
	}

	var err error
	appConfig, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please run 'corkboard init' to set up the configuration.\n")
		os.Exit(1)
	}

	// Enable debug mode from flag or config
	if debugFlag || appConfig.Debug {
		logger.SetDebugMode(true)
		logger.Debug("Configuration loaded from: %s", func() string {
			path, _ := config.GetConfigPath()
			return path
		}())
		logger.Debug("Data directory: %s", appConfig.DataDirectory)
		logger.Debug("Database path: %s", appConfig.GetDatabasePath())
	}

	db, err = database.New(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}

	cardRepo = models.NewCardRepository(db.Conn())
	searchEngine = search.NewEngine(cardRepo)
}
