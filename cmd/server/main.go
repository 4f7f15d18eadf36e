package main

import (
	"context"

	"go.uber.org/zap"

	"tanda-tracker-go/internal/common"
	"tanda-tracker-go/internal/config"
	"tanda-tracker-go/internal/server"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	logger.Info("Starting tracker server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	srv := server.New(services.Store, cfg.Server)
	if err := srv.Run(); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
