package service

import (
	"github.com/MKhiriev/go-registry-keeper/internal/adapter"
	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/internal/telemetry"
)

// ClientServices groups the services of the client application.
type ClientServices struct {
	RegistryService RegistryService
}

func NewClientServices(
	storages *store.ClientStorages,
	registry adapter.RegistryAdapter,
	cfg config.ClientSync,
	metrics *telemetry.SyncMetrics,
	logger *logger.Logger,
) *ClientServices {
	return &ClientServices{
		RegistryService: NewRegistrySyncService(storages, registry, cfg, metrics, logger),
	}
}
