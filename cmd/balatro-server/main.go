package main

import (
	"log/slog"
	"os"

	"github.com/anhbaysgalan1/balatro/internal/config"
	"github.com/anhbaysgalan1/balatro/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	// Create and start game server
	gameServer, err := server.NewGameServer(cfg)
	if err != nil {
		slog.Error("Failed to create game server", "error", err)
		os.Exit(1)
	}

	// Start server (blocks until shutdown)
	if err := gameServer.Start(); err != nil {
		slog.Error("Failed to start game server", "error", err)
		os.Exit(1)
	}
}
