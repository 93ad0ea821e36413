package main

import (
	"context"
	"errors"
	"os"

	"github.com/sun-mit/streamhub/internal/repositories"
	"github.com/sun-mit/streamhub/internal/services"
	"github.com/sun-mit/streamhub/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog services.Catalog
	if svc, err := services.NewTMDBService(config.TMDB, nil); err == nil {
		catalog = svc
	} else {
		logger.Debug("catalog service unavailable", "error", err)
	}

	var storage repositories.Storage
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("failed to run migrations", "error", err)
		}
		storage = repositories.NewSQLiteStorage(db)
		defer db.Close()
	} else {
		logger.Warn("database unavailable, state will not persist", "path", config.Database.Path, "error", err)
		storage = repositories.NewMemoryStorage()
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Catalog:    catalog,
		Storage:    storage,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "streamhub",
		Usage:    "Discover movies and manage your watchlist",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
