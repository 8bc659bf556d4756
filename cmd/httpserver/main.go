package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"

	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/httpserver"
	"moviedb/mongodb"
	"moviedb/person"
	"moviedb/pkg/config"
	"moviedb/pkg/logger"
	"moviedb/pkg/sentry"
	"moviedb/principal"
	"moviedb/title"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.New(logger.Options{}).Errorw("Cannot load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Errorw("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mongodb.NewConnection(ctx, mongodb.Options{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		log.Errorw("Cannot open mongodb connection", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close(context.Background()) }()

	titles := mongodb.NewTitleRepository(store)
	people := mongodb.NewPersonRepository(store)

	server := httpserver.Default(cfg)
	server.Logger = log
	server.Database = store
	server.TitleService = title.NewUsecase(titles)
	server.PersonService = person.NewUsecase(people)
	server.PrincipalService = principal.NewUsecase(mongodb.NewPrincipalRepository(store), titles, people)
	server.CrewService = crew.NewUsecase(mongodb.NewCrewRepository(store), titles, people)
	server.AkaService = aka.NewUsecase(mongodb.NewAkaRepository(store), titles)
	server.EpisodeService = episode.NewUsecase(mongodb.NewEpisodeRepository(store), titles)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started!", "addr", server.Addr, "database", cfg.Mongo.Database)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
