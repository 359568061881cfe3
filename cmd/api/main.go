package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/api"
	"github.com/tokosinar/posfront/internal/api/handlers"
	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := backend.NewClient(cfg.Backend, logger)
	sessions := handlers.NewSessionStore(time.Duration(cfg.POS.SessionTTLMinutes) * time.Minute)

	router := api.NewRouter(cfg, client, sessions, logger)

	logger.Info("Starting POS front-end API",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
