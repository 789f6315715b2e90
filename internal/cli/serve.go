package cli

import (
	"context"
	"fmt"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front end",
	Long:  `Start the HTTP server with the browser UI and the JSON API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	database := db.New(cfg.MongoURI, cfg.Database)
	// Connect eagerly so a dead database is reported at startup, but keep
	// serving either way: the store reconnects lazily per request.
	if err := database.Connect(context.Background()); err != nil {
		logger.Warn("Database not reachable at startup", logger.F("error", err))
		fmt.Println("Warning: database not reachable yet; pages will retry per request.")
	}
	defer database.Close(context.Background())

	srv, err := server.New(database)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	logger.Info("Web server starting", logger.F("addr", addr))
	fmt.Printf("Project Pilot listening on %s\n", addr)
	if err := srv.Start(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
