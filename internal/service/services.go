package service

import (
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
)

// Services groups the services of the registry server.
type Services struct {
	RecordService    RecordService
	ComponentService ComponentService
	AppInfoService   AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, storages, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		RecordService:    NewRecordValidationService().Wrap(NewRecordService(storages.RecordRepository, logger)),
		ComponentService: NewComponentService(storages.ComponentRepository, logger),
		AppInfoService:   appInfo,
	}, nil
}
