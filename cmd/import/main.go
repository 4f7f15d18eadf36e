package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tanda-tracker-go/internal/common"
	"tanda-tracker-go/internal/config"
	"tanda-tracker-go/internal/importer"
	"tanda-tracker-go/internal/store"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	fileFlag := flag.String("file", "", "CSV file exported from the purchase spreadsheet")
	batchFlag := flag.String("batch", store.NewBatchSentinel, "Target batch id (default: create a new batch)")
	flag.Parse()

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file <csv> [-batch <id>]")
		os.Exit(2)
	}

	logger.Info("Starting CSV import", zap.String("file", *fileFlag))

	cfg, err := config.LoadDatabaseOnly()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	data, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Fatal("Failed to read CSV file", zap.Error(err))
	}

	batchID := *batchFlag
	if batchID == store.NewBatchSentinel {
		batch, err := dbService.CreateBatch(ctx, "")
		if err != nil {
			logger.Fatal("Failed to create batch", zap.Error(err))
		}
		logger.Info("Created batch for import", zap.String("name", batch.Name))
		batchID = batch.Id
	}

	units, err := importer.ParseCSV(string(data), batchID)
	if err != nil {
		logger.Fatal("Failed to parse CSV", zap.Error(err))
	}

	imported := 0
	for _, unit := range units {
		if _, err := dbService.SaveUnit(ctx, unit); err != nil {
			logger.Fatal("Failed to save imported unit",
				zap.String("model", unit.Model),
				zap.Error(err))
		}
		imported++
	}

	fmt.Printf("Imported %d units into batch %s\n", imported, batchID)
	logger.Info("CSV import completed", zap.Int("imported", imported))
}
