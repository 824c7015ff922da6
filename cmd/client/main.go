package main

import (
	"fmt"

	"github.com/passway/passway/internal/adapter"
	"github.com/passway/passway/internal/client"
	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/passkey"
	"github.com/passway/passway/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("passway-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	authenticator := passkey.NewSoftAuthenticator()
	services := service.NewClientServices(authenticator, serverAdapter, cfg, log)

	app := client.NewApp(services, log)
	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
