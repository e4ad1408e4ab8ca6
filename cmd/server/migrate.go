package main

import (
	"context"
	"fmt"

	"github.com/minimal-api/internal/config"
	"github.com/minimal-api/internal/storage"
)

func runMigrate(ctx context.Context, cfgFile string) error {
	cfg, log, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	if cfg.Database.Driver == config.DriverMemory {
		log.Info("memory driver has no schema, nothing to migrate")
		return nil
	}

	db, err := storage.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("running migrations", "host", cfg.Database.Host, "database", cfg.Database.Database)
	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
