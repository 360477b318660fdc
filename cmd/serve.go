package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/api"
	"github.com/corkboard-app/corkboard/internal/logger"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start an HTTP API server that exposes the canvas via REST endpoints.

Frontend renderers and other tools talk to this API to draw the board
and drive the search filter. The server provides endpoints for:

- Card CRUD operations and positioning
- Boolean search (AND/OR/NOT, phrases, wildcards, NEAR/N)
- Tag management
- Statistics and configuration

Examples:
  corkboard serve                             # Start on localhost:8080
  corkboard serve --host 0.0.0.0 --port 3000  # All interfaces, port 3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind the server to")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to bind the server to")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger.Info("Initializing HTTP API server...")

	apiServer := api.NewServer(appConfig, cardRepo, searchEngine)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- apiServer.Start(serveHost, servePort)
	}()

	fmt.Printf("Corkboard API server\n")
	fmt.Printf("  Server URL: http://%s:%d\n", serveHost, servePort)
	fmt.Printf("  Health:     http://%s:%d/api/v1/health\n", serveHost, servePort)
	fmt.Printf("  Cards:      http://%s:%d/api/v1/cards\n", serveHost, servePort)
	fmt.Printf("Press Ctrl+C to stop.\n\n")

	select {
	case sig := <-sigChan:
		logger.Info("Received signal %v, shutting down gracefully...", sig)
		if err := apiServer.Stop(); err != nil {
			logger.Error("Error during server shutdown: %v", err)
			return err
		}
		logger.Info("Server stopped successfully")
		return nil
	case err := <-errChan:
		if err != nil {
			logger.Error("Server error: %v", err)
			return err
		}
		return nil
	}
}
