package main

import (
	"context"
	"flag"
	"os"
	"time"

	"studymarket/internal/infrastructure/mongodb"
	"studymarket/pkg/config"
	"studymarket/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "overall deadline for index creation")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer mongodb.Disconnect(client)

	if err := mongodb.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
		logger.Error("Index provisioning failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Index provisioning complete for database %s", cfg.MongoDatabase)
}
