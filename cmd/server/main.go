// Package main implements the entry point for the DevLink API server,
// which provides JWT-backed authentication, developer profile management
// and a GitHub repository proxy.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/devlinkhq/devlink-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run database migrations (up, down or status) and exit")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up logging.
// Returns the loaded config, the root logger and any initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.GitHub.Token != "" {
		slog.Debug("GitHub configuration", "token_present", true)
	}

	return cfg, appLogger, nil
}
