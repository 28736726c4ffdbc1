package main

import (
	"time"

	"github.com/Moutabir-omar/MA-Orangegame/internal/config"
	"github.com/Moutabir-omar/MA-Orangegame/internal/logging"
	"github.com/Moutabir-omar/MA-Orangegame/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid orangegame configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, publicGamesTTL time.Duration) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, publicGamesTTL)
}
