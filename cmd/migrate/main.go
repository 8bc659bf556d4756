package main

import (
	"context"
	"os"

	"moviedb/mongodb"
	"moviedb/pkg/config"
	"moviedb/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.New(logger.Options{}).Errorw("cannot load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()
	store, err := mongodb.NewConnection(ctx, mongodb.Options{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		log.Errorw("cannot connecting to db", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close(ctx) }()

	if err := mongodb.EnsureSchema(ctx, store); err != nil {
		log.Errorw("cannot apply schema", "error", err)
		os.Exit(1)
	}

	log.Infow("applied schema", "collections", len(mongodb.Collections()), "database", cfg.Mongo.Database)
}
