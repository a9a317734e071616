package main

import (
	"context"
	"os"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/handler"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/ratelimit"
	"github.com/MKhiriev/go-tours/internal/server"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/workers"
	"github.com/MKhiriev/go-tours/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const connectTimeout = 10 * time.Second

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	build.Print(os.Stdout)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-tours-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewEnvironmentLogger("go-tours-server", cfg.App.Environment)
	log.Info().Str("environment", cfg.App.Environment).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, log)

	counter := ratelimit.NewCounter(cfg.Workers.RateLimitCleanupInterval, log)

	handlers, err := handler.NewHandlers(services, cfg, counter, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(counter), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
