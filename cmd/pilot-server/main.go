package main

import (
	"context"
	"log"

	"github.com/fennwick/projectpilot/internal/config"
	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = cfg.LogConsole
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	database := db.New(cfg.MongoURI, cfg.Database)
	if err := database.Connect(context.Background()); err != nil {
		// Keep serving: the store reconnects lazily per request.
		log.Printf("Warning: database not reachable yet: %v", err)
	}
	defer database.Close(context.Background())

	srv, err := server.New(database)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	log.Printf("Project Pilot server starting on %s", cfg.ListenAddr)
	if err := srv.Start(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
