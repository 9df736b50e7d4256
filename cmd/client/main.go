package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/adapter"
	"github.com/MKhiriev/go-registry-keeper/internal/client"
	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/internal/telemetry"
	"github.com/MKhiriev/go-registry-keeper/internal/tui"
	"github.com/MKhiriev/go-registry-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("registry-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("registry-client", cfg.App.LogFile)

	registry, err := adapter.NewHTTPRegistryAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating registry adapter")
	}
	if err = registry.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("registry is not reachable, starting offline")
	}

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating local storage")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing local storage")
		}
	}()

	provider, reader := telemetry.NewClientMeterProvider()
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	metrics, err := telemetry.NewSyncMetrics(provider)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sync metrics")
	}

	services := service.NewClientServices(storages, registry, cfg.Sync, metrics, log)

	ui, err := tui.New(services, reader, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Err(err).Msg("client run error")
	}
}
