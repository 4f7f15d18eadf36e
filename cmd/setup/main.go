package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"tanda-tracker-go/internal/common"
	"tanda-tracker-go/internal/config"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	seedFlag := flag.String("seed", "", "Optional YAML fixtures file to preload")
	flag.Parse()

	logger.Info("Starting database setup")

	cfg, err := config.LoadDatabaseOnly()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	// A fresh database gets a first batch so unit entry works immediately.
	batches, err := dbService.GetBatches(ctx)
	if err != nil {
		logger.Fatal("Failed to list batches", zap.Error(err))
	}
	if len(batches) == 0 {
		batch, err := dbService.CreateBatch(ctx, "TANDA 1 - INICIAL")
		if err != nil {
			logger.Fatal("Failed to create initial batch", zap.Error(err))
		}
		logger.Info("Created initial batch", zap.String("name", batch.Name))
	}

	if *seedFlag != "" {
		logger.Info("Loading seed fixtures", zap.String("file", *seedFlag))
		seed, err := common.LoadSeedConfig(*seedFlag)
		if err != nil {
			logger.Fatal("Failed to load seed fixtures", zap.Error(err))
		}
		if err := common.ApplySeed(ctx, dbService, seed); err != nil {
			logger.Fatal("Failed to apply seed fixtures", zap.Error(err))
		}
		logger.Info("Seed fixtures applied",
			zap.Int("batches", len(seed.Batches)),
			zap.Int("movements", len(seed.Movements)))
	}

	fmt.Println("Database setup completed:", cfg.Database.Path)
	logger.Info("Database setup completed")
}
