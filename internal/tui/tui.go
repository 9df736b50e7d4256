// Package tui is the terminal interface of the registry client. It renders
// the published registry view and drives the offline-first engine.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
	"github.com/MKhiriev/go-registry-keeper/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	registry  service.RegistryService
	reader    sdkmetric.Reader
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New builds the interface over the client services. reader is the sync
// metrics reader shown on the sync screen and may be nil.
func New(services *service.ClientServices, reader sdkmetric.Reader, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.RegistryService == nil {
		return nil, ErrNoRegistryService
	}

	return &TUI{
		registry:  services.RegistryService,
		reader:    reader,
		buildInfo: buildInfo,
		logger:    logger.WithComponent("tui"),
	}, nil
}

// Run shows the interface until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	updates, unsubscribe := t.registry.View().Subscribe()
	defer unsubscribe()

	model := newAppModel(ctx, t.registry, t.reader, t.buildInfo, updates)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		t.logger.Err(err).Msg("terminal ui failed")
		return fmt.Errorf("error running terminal ui: %w", err)
	}

	t.logger.Info().Msg("terminal ui closed")
	return nil
}
