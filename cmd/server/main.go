package main

import (
	"context"
	"fmt"
	"time"

	"github.com/passway/passway/internal/config"
	httpHandler "github.com/passway/passway/internal/handler/http"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/server"
	"github.com/passway/passway/internal/service"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const sessionPurgeInterval = time.Hour

func main() {
	printBuildInfo()

	log := logger.NewLogger("passway-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg, log)
	handler := httpHandler.NewHandler(services, cfg.App.Version, log)

	backgroundWorkers := workers.NewWorkers(
		workers.NewSessionPurgeWorker(storages.SessionRepository, cfg.App.TokenDuration, sessionPurgeInterval, log),
	)
	go backgroundWorkers.Run(ctx)

	servers, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	servers.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
