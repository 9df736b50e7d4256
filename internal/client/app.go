package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
	"github.com/MKhiriev/go-registry-keeper/internal/workers"
	"github.com/MKhiriev/go-registry-keeper/models"
)

var errNoClientServices = errors.New("client services are not configured")

// App runs the terminal UI next to the background refresh worker.
type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || services.RegistryService == nil || ui == nil {
		return nil, errNoClientServices
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  workers.NewWorkers(workers.NewRefreshWorker(services.RegistryService, cfg, logger)),
		logger:   logger,
	}, nil
}

// Run loads the registry, starts the workers and blocks in the UI. The
// registry service is closed on return.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := a.services.RegistryService
	defer func() {
		if err := registry.Close(); err != nil {
			a.logger.Err(err).Msg("error closing registry service")
		}
	}()

	result, err := registry.List(ctx, models.RecordFilter{})
	switch {
	case err != nil:
		a.logger.Warn().Err(err).Msg("initial registry load failed")
	case result.Origin != models.OriginRemote:
		a.logger.Warn().Str("origin", result.Origin.String()).Msg("registry unreachable, showing local replica")
	default:
		a.logger.Info().Int("records", len(result.Records)).Int("drained", result.Drained).Msg("registry loaded")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if err = a.ui.Run(ctx); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}

	return nil
}
